package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/courier-dashboard/internal/application/orders"
	"github.com/jhoicas/courier-dashboard/internal/application/runsheet"
	"github.com/jhoicas/courier-dashboard/internal/application/session"
	"github.com/jhoicas/courier-dashboard/internal/domain"
	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

// filterButton botón del filtro del listado.
type filterButton struct {
	Label  string
	Value  string
	Active bool
}

// OrdersHandler páginas del listado y del detalle de pedidos.
type OrdersHandler struct {
	sess     *session.Controller
	list     *orders.ListController
	detail   *orders.DetailController
	runSheet *runsheet.UseCase
}

// NewOrdersHandler construye el handler de pedidos.
func NewOrdersHandler(sess *session.Controller, list *orders.ListController, detail *orders.DetailController, runSheet *runsheet.UseCase) *OrdersHandler {
	return &OrdersHandler{sess: sess, list: list, detail: detail, runSheet: runSheet}
}

// Dashboard lista los pedidos asignados, con filtro por estado vía ?status=.
// Un fallo de carga no rompe la página: se muestra el listado anterior con
// un aviso y el usuario reintenta desde la misma acción.
func (h *OrdersHandler) Dashboard(c *fiber.Ctx) error {
	filter, ok := orders.ParseFilter(c.Query("status"))
	if !ok {
		filter = orders.FilterAll
	}

	loadErr := h.list.Load(c.UserContext(), filter)

	user, _ := h.sess.CurrentUser()
	data := fiber.Map{
		"Title":   "Orders",
		"User":    user,
		"Orders":  h.list.Orders(),
		"Filter":  string(filter),
		"Buttons": filterButtons(filter),
	}
	if loadErr != nil {
		data["Error"] = "Failed to fetch orders. Please try again."
	}
	return c.Render("dashboard", data)
}

// filterButtons los mismos accesos rápidos del dashboard: All / Ready /
// Picked Up / Delivered.
func filterButtons(active orders.Filter) []filterButton {
	defs := []struct {
		label string
		value orders.Filter
	}{
		{"All", orders.FilterAll},
		{"Ready", orders.Filter(entity.StatusReadyForPickup)},
		{"Picked Up", orders.Filter(entity.StatusOutForDelivery)},
		{"Delivered", orders.Filter(entity.StatusDelivered)},
	}
	out := make([]filterButton, 0, len(defs))
	for _, d := range defs {
		out = append(out, filterButton{
			Label:  d.label,
			Value:  string(d.value),
			Active: d.value == active,
		})
	}
	return out
}

// Detail muestra un pedido con sus acciones según el estado.
func (h *OrdersHandler) Detail(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.detail.Load(c.UserContext(), id); err != nil {
		msg := "Failed to load order details"
		status := fiber.StatusBadGateway
		if errors.Is(err, domain.ErrNotFound) {
			msg = "Order not found"
			status = fiber.StatusNotFound
		}
		return c.Status(status).Render("error", fiber.Map{
			"Title":   "Error",
			"Message": msg,
		})
	}

	order, _ := h.detail.Order()
	return c.Render("order_detail", fiber.Map{
		"Title":   "Order #" + order.OrderNumber,
		"Order":   order,
		"Actions": actionButtons(order.Status),
		"Flash":   popFlash(c),
	})
}

// actionButton acción de transición ofrecida en el detalle.
type actionButton struct {
	Label  string
	Target entity.OrderStatus
	Kind   string // primary, success, danger
}

// actionButtons qué botones se ofrecen: exactamente los AllowedTargets del
// estado, con su etiqueta y estilo.
func actionButtons(status entity.OrderStatus) []actionButton {
	var out []actionButton
	for _, target := range status.AllowedTargets() {
		switch target {
		case entity.StatusOutForDelivery:
			out = append(out, actionButton{Label: "Pick Up Order", Target: target, Kind: "primary"})
		case entity.StatusDelivered:
			out = append(out, actionButton{Label: "Mark as Delivered", Target: target, Kind: "success"})
		case entity.StatusCancelled:
			out = append(out, actionButton{Label: "Cancel Delivery", Target: target, Kind: "danger"})
		}
	}
	return out
}

// UpdateStatus aplica la transición solicitada desde el formulario del
// detalle y redirige de vuelta con el mensaje de confirmación. En fallo el
// pedido mostrado queda como estaba y se muestra el aviso genérico.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	target, ok := entity.ParseStatus(c.FormValue("status"))
	if !ok {
		setFlash(c, "Unknown order status requested.")
		return c.Redirect("/orders/"+id, fiber.StatusFound)
	}

	// Asegurar que el controlador tiene cargado este pedido (el detalle pudo
	// haberse abierto en otra pestaña sobre otro pedido).
	if current, loaded := h.detail.Order(); !loaded || current.ID != id {
		if err := h.detail.Load(c.UserContext(), id); err != nil {
			setFlash(c, "Failed to update order status. Please try again.")
			return c.Redirect("/orders/"+id, fiber.StatusFound)
		}
	}

	msg, err := h.detail.Transition(c.UserContext(), target)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			setFlash(c, "That action is not available for this order.")
		default:
			setFlash(c, "Failed to update order status. Please try again.")
		}
		return c.Redirect("/orders/"+id, fiber.StatusFound)
	}

	setFlash(c, msg)
	return c.Redirect("/orders/"+id, fiber.StatusFound)
}

// RunSheet descarga la hoja de ruta en PDF con los pedidos en reparto.
func (h *OrdersHandler) RunSheet(c *fiber.Ctx) error {
	raw, err := h.runSheet.Generate(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).Render("error", fiber.Map{
			"Title":   "Error",
			"Message": "Failed to generate the run sheet. Please try again.",
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="run-sheet.pdf"`)
	return c.Send(raw)
}
