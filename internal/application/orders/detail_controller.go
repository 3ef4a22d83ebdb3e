package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/courier-dashboard/internal/domain"
	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
	"github.com/jhoicas/courier-dashboard/pkg/logger"
)

// Mensajes de confirmación por transición (los mismos toasts del dashboard).
const (
	msgPickedUp  = "Order picked up! Start delivering."
	msgDelivered = "Order delivered successfully!"
	msgCancelled = "Order delivery cancelled."
	msgUpdated   = "Order updated successfully!"
)

// DetailController carga un pedido por identificador y aplica el protocolo de
// transición de estado. El pedido mostrado solo se reemplaza entero con lo
// que responde el servidor; nunca se parchea localmente.
type DetailController struct {
	gateway Gateway
	tokens  TokenSource
	log     *logger.Logger

	mu    sync.Mutex
	seq   uint64
	order *entity.Order
}

// NewDetailController construye el controlador de detalle.
func NewDetailController(gateway Gateway, tokens TokenSource, log *logger.Logger) *DetailController {
	return &DetailController{gateway: gateway, tokens: tokens, log: log}
}

// Load trae el pedido. ErrNotFound y ErrUnavailable llegan diferenciados
// desde el gateway; una respuesta superada por un Load más nuevo se descarta.
func (c *DetailController) Load(ctx context.Context, id string) error {
	token, ok := c.tokens.Token()
	if !ok {
		return domain.ErrNotAuthenticated
	}

	c.mu.Lock()
	c.seq++
	mySeq := c.seq
	c.mu.Unlock()

	order, err := c.gateway.Get(ctx, token, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if mySeq != c.seq {
		c.log.Debug().Str("order_id", id).Msg("respuesta de detalle obsoleta descartada")
		return nil
	}

	if err != nil {
		c.log.Error().Err(err).Str("order_id", id).Msg("cargar detalle de pedido")
		c.order = nil
		return err
	}

	c.order = &order
	return nil
}

// Order devuelve el pedido cargado.
func (c *DetailController) Order() (entity.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return entity.Order{}, false
	}
	return *c.order, true
}

// Transition solicita el cambio de estado del pedido cargado y, en éxito,
// reemplaza el pedido completo con la respuesta autoritativa del servidor
// (ahí viajan también efectos colaterales como estimatedDeliveryTime). En
// fallo el pedido mostrado no se toca y no hay aplicación optimista.
// Devuelve el mensaje de confirmación para la UI.
func (c *DetailController) Transition(ctx context.Context, target entity.OrderStatus) (string, error) {
	token, ok := c.tokens.Token()
	if !ok {
		return "", domain.ErrNotAuthenticated
	}

	c.mu.Lock()
	if c.order == nil {
		c.mu.Unlock()
		return "", domain.ErrNotFound
	}
	current := *c.order
	c.mu.Unlock()

	if !current.Status.CanTransitionTo(target) {
		return "", fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, current.Status, target)
	}

	updated, err := c.gateway.UpdateStatus(ctx, token, current.ID, target)
	if err != nil {
		c.log.Error().Err(err).Str("order_id", current.ID).
			Str("target", string(target)).Msg("transición de estado fallida")
		return "", err
	}

	c.mu.Lock()
	c.order = &updated
	c.mu.Unlock()

	c.log.Info().Str("order_id", updated.ID).Str("status", string(updated.Status)).
		Msg("estado de pedido actualizado")
	return confirmationMessage(target), nil
}

func confirmationMessage(target entity.OrderStatus) string {
	switch target {
	case entity.StatusOutForDelivery:
		return msgPickedUp
	case entity.StatusDelivered:
		return msgDelivered
	case entity.StatusCancelled:
		return msgCancelled
	default:
		return msgUpdated
	}
}
