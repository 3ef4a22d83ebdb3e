package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del pedido dentro del ciclo de vida de entrega.
type OrderStatus string

// Ciclo de vida: pending → order_confirmed → being_packed → ready_for_pickup
// → out_for_delivery → {delivered | cancelled}. Los dos últimos son terminales.
const (
	StatusPending        OrderStatus = "pending"
	StatusOrderConfirmed OrderStatus = "order_confirmed"
	StatusBeingPacked    OrderStatus = "being_packed"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// AllStatuses en orden de ciclo de vida (para filtros y validación).
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusOrderConfirmed,
	StatusBeingPacked,
	StatusReadyForPickup,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// ParseStatus valida un string contra el enum. Cualquier otro valor es inválido.
func ParseStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	for _, v := range AllStatuses {
		if st == v {
			return st, true
		}
	}
	return "", false
}

// IsValid reporta si el estado es uno de los siete valores del enum.
func (s OrderStatus) IsValid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// IsTerminal reporta si el estado no admite más transiciones (delivered, cancelled).
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// NotReadyYet reporta si el pedido aún no está listo para que el repartidor
// actúe. Chequeo por pertenencia: tanto pending como being_packed muestran
// el mensaje "not ready" (la versión anterior del dashboard agrupaba mal la
// condición y pending nunca lo mostraba).
func (s OrderStatus) NotReadyYet() bool {
	switch s {
	case StatusPending, StatusOrderConfirmed, StatusBeingPacked:
		return true
	}
	return false
}

// AllowedTargets devuelve las transiciones que el repartidor puede iniciar
// desde este estado. El servidor remoto sigue siendo la autoridad; esto solo
// decide qué acciones se ofrecen en la UI.
func (s OrderStatus) AllowedTargets() []OrderStatus {
	switch s {
	case StatusReadyForPickup:
		return []OrderStatus{StatusOutForDelivery}
	case StatusOutForDelivery:
		return []OrderStatus{StatusDelivered, StatusCancelled}
	default:
		return nil
	}
}

// CanTransitionTo reporta si target está entre las transiciones permitidas.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range s.AllowedTargets() {
		if t == target {
			return true
		}
	}
	return false
}

// Label texto legible del estado para la UI.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusOrderConfirmed:
		return "Confirmed"
	case StatusBeingPacked:
		return "Being Packed"
	case StatusReadyForPickup:
		return "Ready for Pickup"
	case StatusOutForDelivery:
		return "Out for Delivery"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Customer snapshot del cliente embebido en el pedido (no es una referencia viva).
type Customer struct {
	Name            string
	Email           string
	Phone           string
	ShippingAddress string
}

// Product snapshot del producto dentro de una línea del pedido.
type Product struct {
	ID     string
	Name   string
	Images []string
}

// OrderItem línea del pedido.
type OrderItem struct {
	Product  Product
	Quantity int
}

// Order pedido asignado al repartidor. Copia transitoria de solo lectura del
// sistema remoto; lo único que esta aplicación muta (vía API) es el estado.
type Order struct {
	ID                    string
	OrderNumber           string
	Customer              Customer
	Items                 []OrderItem
	Status                OrderStatus
	CreatedAt             time.Time
	EstimatedDeliveryTime *time.Time // opcional; el servidor puede fijarlo durante una transición
	Notes                 string
	TotalAmount           decimal.Decimal
}

// ItemCount total de unidades del pedido. Un pedido sin líneas es válido ("0 items").
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
