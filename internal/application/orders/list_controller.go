package orders

import (
	"context"
	"sync"

	"github.com/jhoicas/courier-dashboard/internal/domain"
	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
	"github.com/jhoicas/courier-dashboard/pkg/logger"
)

// ListController carga los pedidos asignados, re-consultando al cambiar el
// filtro. El servidor filtra; aquí el resultado se usa tal cual llega, sin
// reordenar. En fallo el listado conserva su valor anterior.
type ListController struct {
	gateway Gateway
	tokens  TokenSource
	log     *logger.Logger

	mu      sync.Mutex
	seq     uint64
	orders  []entity.Order
	filter  Filter
	loading bool
}

// NewListController construye el controlador del listado.
func NewListController(gateway Gateway, tokens TokenSource, log *logger.Logger) *ListController {
	return &ListController{
		gateway: gateway,
		tokens:  tokens,
		log:     log,
		filter:  FilterAll,
	}
}

// Load consulta los pedidos con el filtro dado. Una carga superada por otra
// más nueva descarta su respuesta al llegar. El error se devuelve para quien
// quiera reaccionar, pero el estado visible no se degrada por un fallo.
func (c *ListController) Load(ctx context.Context, filter Filter) error {
	token, ok := c.tokens.Token()
	if !ok {
		return domain.ErrNotAuthenticated
	}

	c.mu.Lock()
	c.seq++
	mySeq := c.seq
	c.filter = filter
	c.loading = true
	c.mu.Unlock()

	result, err := c.gateway.List(ctx, token, filter.Status())

	c.mu.Lock()
	defer c.mu.Unlock()

	if mySeq != c.seq {
		// Llegó tarde: una carga más nueva ya tomó el control del estado.
		c.log.Debug().Uint64("seq", mySeq).Uint64("current", c.seq).
			Msg("respuesta de listado obsoleta descartada")
		return nil
	}
	c.loading = false

	if err != nil {
		c.log.Error().Err(err).Str("filter", string(filter)).Msg("cargar pedidos")
		return err
	}

	c.orders = result
	return nil
}

// Orders devuelve el listado vigente.
func (c *ListController) Orders() []entity.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

// Filter devuelve el filtro vigente.
func (c *ListController) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Loading reporta si hay una carga en vuelo.
func (c *ListController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
