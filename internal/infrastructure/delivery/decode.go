package delivery

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/courier-dashboard/internal/domain"
	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

// Estructuras del protocolo JSON del API remoto. El backend expone los
// identificadores de Mongo como "_id" en pedidos y snapshots embebidos,
// pero como "id" en el usuario. La decodificación valida y normaliza aquí,
// en el borde; el dominio nunca ve strings de fecha ni estados arbitrarios.

type wireUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Vehicle  string `json:"vehicle"`
}

type wireCustomer struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shippingAddress"`
}

type wireProduct struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

type wireItem struct {
	Product  wireProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

type wireOrder struct {
	ID                    string          `json:"_id"`
	OrderNumber           string          `json:"orderNumber"`
	Customer              wireCustomer    `json:"customer"`
	Items                 []wireItem      `json:"items"`
	Status                string          `json:"status"`
	CreatedAt             string          `json:"createdAt"`
	EstimatedDeliveryTime string          `json:"estimatedDeliveryTime"`
	Notes                 string          `json:"notes"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
}

func toUser(w wireUser) entity.User {
	return entity.User{
		ID:       w.ID,
		FullName: w.FullName,
		Email:    w.Email,
		Phone:    w.Phone,
		Vehicle:  w.Vehicle,
	}
}

// parseTimestamp normaliza un timestamp del API (RFC3339, con o sin
// fracción de segundo) a time.Time. Un valor malformado es error de
// decodificación, no un default silencioso.
func parseTimestamp(field, s string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: campo %s: %q no es RFC3339", domain.ErrDecode, field, s)
	}
	return ts, nil
}

func toOrder(w wireOrder) (entity.Order, error) {
	status, ok := entity.ParseStatus(w.Status)
	if !ok {
		return entity.Order{}, fmt.Errorf("%w: estado de pedido desconocido %q", domain.ErrDecode, w.Status)
	}

	createdAt, err := parseTimestamp("createdAt", w.CreatedAt)
	if err != nil {
		return entity.Order{}, err
	}

	var estimated *time.Time
	if w.EstimatedDeliveryTime != "" {
		ts, err := parseTimestamp("estimatedDeliveryTime", w.EstimatedDeliveryTime)
		if err != nil {
			return entity.Order{}, err
		}
		estimated = &ts
	}

	items := make([]entity.OrderItem, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, entity.OrderItem{
			Product: entity.Product{
				ID:     it.Product.ID,
				Name:   it.Product.Name,
				Images: it.Product.Images,
			},
			Quantity: it.Quantity,
		})
	}

	return entity.Order{
		ID:          w.ID,
		OrderNumber: w.OrderNumber,
		Customer: entity.Customer{
			Name:            w.Customer.Name,
			Email:           w.Customer.Email,
			Phone:           w.Customer.Phone,
			ShippingAddress: w.Customer.ShippingAddress,
		},
		Items:                 items,
		Status:                status,
		CreatedAt:             createdAt,
		EstimatedDeliveryTime: estimated,
		Notes:                 w.Notes,
		TotalAmount:           w.TotalAmount,
	}, nil
}
