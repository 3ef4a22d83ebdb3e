package delivery

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

// OrderGateway llamadas de pedidos contra el API remoto. Todas requieren bearer token.
type OrderGateway struct {
	client *Client
}

// NewOrderGateway construye el gateway de pedidos.
func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

type ordersResponse struct {
	Orders []wireOrder `json:"orders"`
}

type orderResponse struct {
	Order wireOrder `json:"order"`
}

type updateStatusRequest struct {
	Status entity.OrderStatus `json:"status"`
}

// List devuelve los pedidos asignados. Con status no vacío el filtro viaja al
// servidor como query param; el servidor es quien filtra, aquí no se reordena
// ni se refilltra el resultado.
func (g *OrderGateway) List(ctx context.Context, token string, status entity.OrderStatus) ([]entity.Order, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{string(status)}}
	}

	var out ordersResponse
	if err := g.client.doJSON(ctx, http.MethodGet, "/api/delivery/orders", token, query, nil, &out); err != nil {
		return nil, err
	}

	orders := make([]entity.Order, 0, len(out.Orders))
	for _, w := range out.Orders {
		o, err := toOrder(w)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Get devuelve un pedido por identificador. 404 llega como domain.ErrNotFound.
func (g *OrderGateway) Get(ctx context.Context, token, id string) (entity.Order, error) {
	var out orderResponse
	if err := g.client.doJSON(ctx, http.MethodGet, "/api/delivery/orders/"+url.PathEscape(id), token, nil, nil, &out); err != nil {
		return entity.Order{}, err
	}
	return toOrder(out.Order)
}

// UpdateStatus solicita la transición de estado y devuelve el pedido
// autoritativo que responde el servidor (puede traer efectos colaterales,
// ej. estimatedDeliveryTime actualizado). Una sola petición, sin reintentos.
func (g *OrderGateway) UpdateStatus(ctx context.Context, token, id string, target entity.OrderStatus) (entity.Order, error) {
	var out orderResponse
	err := g.client.doJSON(ctx, http.MethodPut, "/api/delivery/orders/"+url.PathEscape(id)+"/status", token,
		nil, updateStatusRequest{Status: target}, &out)
	if err != nil {
		return entity.Order{}, err
	}
	return toOrder(out.Order)
}
