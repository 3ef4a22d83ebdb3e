// Package orders contiene los controladores del listado y del detalle de
// pedidos. Cada carga lleva un número de secuencia: si mientras una petición
// está en vuelo se dispara otra más nueva, la respuesta vieja se descarta en
// lugar de pisar el estado (cierre de la carrera de respuestas fuera de orden).
package orders

import (
	"context"

	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

// Gateway operaciones remotas de pedidos (internal/infrastructure/delivery).
type Gateway interface {
	List(ctx context.Context, token string, status entity.OrderStatus) ([]entity.Order, error)
	Get(ctx context.Context, token, id string) (entity.Order, error)
	UpdateStatus(ctx context.Context, token, id string, target entity.OrderStatus) (entity.Order, error)
}

// TokenSource entrega la credencial vigente (el controlador de sesión).
type TokenSource interface {
	Token() (string, bool)
}

// Filter filtro del listado: "all" o un estado específico.
type Filter string

// FilterAll lista sin filtro de servidor.
const FilterAll Filter = "all"

// ParseFilter acepta "all" (o vacío) y los siete estados del enum.
func ParseFilter(s string) (Filter, bool) {
	if s == "" || s == string(FilterAll) {
		return FilterAll, true
	}
	if _, ok := entity.ParseStatus(s); !ok {
		return "", false
	}
	return Filter(s), true
}

// Status devuelve el estado a enviar al servidor; vacío cuando es "all".
func (f Filter) Status() entity.OrderStatus {
	if f == FilterAll || f == "" {
		return ""
	}
	return entity.OrderStatus(f)
}
