package runsheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/courier-dashboard/internal/application/runsheet"
	"github.com/jhoicas/courier-dashboard/internal/domain"
	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

type stubGateway struct {
	gotStatus entity.OrderStatus
	list      []entity.Order
	err       error
}

func (s *stubGateway) List(_ context.Context, _ string, status entity.OrderStatus) ([]entity.Order, error) {
	s.gotStatus = status
	return s.list, s.err
}

func (s *stubGateway) Get(context.Context, string, string) (entity.Order, error) {
	panic("no usado")
}

func (s *stubGateway) UpdateStatus(context.Context, string, string, entity.OrderStatus) (entity.Order, error) {
	panic("no usado")
}

type stubSession struct {
	token string
	user  entity.User
	ok    bool
}

func (s stubSession) Token() (string, bool)            { return s.token, s.ok }
func (s stubSession) CurrentUser() (entity.User, bool) { return s.user, s.ok }

type captureGenerator struct {
	courier entity.User
	orders  []entity.Order
}

func (g *captureGenerator) GenerateRunSheet(_ context.Context, courier entity.User, list []entity.Order, _ time.Time) ([]byte, error) {
	g.courier = courier
	g.orders = list
	return []byte("%PDF-fake"), nil
}

func TestGenerate_ConsultaPedidosEnReparto(t *testing.T) {
	gw := &stubGateway{list: []entity.Order{{ID: "o1", Status: entity.StatusOutForDelivery}}}
	gen := &captureGenerator{}
	sess := stubSession{token: "t1", user: entity.User{ID: "u1", FullName: "John"}, ok: true}

	uc := runsheet.NewUseCase(gw, sess, sess, gen)
	raw, err := uc.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), raw)
	assert.Equal(t, entity.StatusOutForDelivery, gw.gotStatus, "la hoja de ruta solo lleva pedidos en reparto")
	assert.Equal(t, "John", gen.courier.FullName)
	require.Len(t, gen.orders, 1)
}

func TestGenerate_SinSesion(t *testing.T) {
	uc := runsheet.NewUseCase(&stubGateway{}, stubSession{}, stubSession{}, &captureGenerator{})
	_, err := uc.Generate(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestGenerate_FalloDelGateway(t *testing.T) {
	gw := &stubGateway{err: domain.ErrUnavailable}
	sess := stubSession{token: "t1", user: entity.User{ID: "u1"}, ok: true}

	uc := runsheet.NewUseCase(gw, sess, sess, &captureGenerator{})
	_, err := uc.Generate(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
