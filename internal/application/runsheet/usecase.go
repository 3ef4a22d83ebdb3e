// Package runsheet genera la hoja de ruta imprimible del repartidor: los
// pedidos que lleva en reparto (out_for_delivery), con dirección y contacto,
// para llevar en papel cuando el teléfono no acompaña.
package runsheet

import (
	"context"
	"time"

	"github.com/jhoicas/courier-dashboard/internal/application/orders"
	"github.com/jhoicas/courier-dashboard/internal/domain"
	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

// Generator renderiza la hoja de ruta a PDF (internal/infrastructure/pdf).
type Generator interface {
	GenerateRunSheet(ctx context.Context, courier entity.User, list []entity.Order, generatedAt time.Time) ([]byte, error)
}

// UserSource entrega el repartidor en sesión (el controlador de sesión).
type UserSource interface {
	CurrentUser() (entity.User, bool)
}

// UseCase arma la hoja de ruta consultando los pedidos en reparto.
type UseCase struct {
	gateway orders.Gateway
	tokens  orders.TokenSource
	users   UserSource
	gen     Generator
	now     func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(gateway orders.Gateway, tokens orders.TokenSource, users UserSource, gen Generator) *UseCase {
	return &UseCase{gateway: gateway, tokens: tokens, users: users, gen: gen, now: time.Now}
}

// Generate consulta los pedidos out_for_delivery y devuelve el PDF.
func (uc *UseCase) Generate(ctx context.Context) ([]byte, error) {
	token, ok := uc.tokens.Token()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	courier, ok := uc.users.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	list, err := uc.gateway.List(ctx, token, entity.StatusOutForDelivery)
	if err != nil {
		return nil, err
	}

	return uc.gen.GenerateRunSheet(ctx, courier, list, uc.now())
}
