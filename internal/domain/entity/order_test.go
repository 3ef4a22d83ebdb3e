package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

// Matriz de acciones por estado: exactamente una acción desde ready_for_pickup,
// exactamente dos desde out_for_delivery, ninguna en el resto.
func TestAllowedTargets_MatrizPorEstado(t *testing.T) {
	cases := []struct {
		status  entity.OrderStatus
		targets []entity.OrderStatus
	}{
		{entity.StatusPending, nil},
		{entity.StatusOrderConfirmed, nil},
		{entity.StatusBeingPacked, nil},
		{entity.StatusReadyForPickup, []entity.OrderStatus{entity.StatusOutForDelivery}},
		{entity.StatusOutForDelivery, []entity.OrderStatus{entity.StatusDelivered, entity.StatusCancelled}},
		{entity.StatusDelivered, nil},
		{entity.StatusCancelled, nil},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.targets, tc.status.AllowedTargets())
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, entity.StatusReadyForPickup.CanTransitionTo(entity.StatusOutForDelivery))
	assert.True(t, entity.StatusOutForDelivery.CanTransitionTo(entity.StatusDelivered))
	assert.True(t, entity.StatusOutForDelivery.CanTransitionTo(entity.StatusCancelled))

	// Saltos no permitidos
	assert.False(t, entity.StatusReadyForPickup.CanTransitionTo(entity.StatusDelivered))
	assert.False(t, entity.StatusPending.CanTransitionTo(entity.StatusOutForDelivery))

	// Estados terminales no transicionan jamás
	for _, target := range entity.AllStatuses {
		assert.False(t, entity.StatusDelivered.CanTransitionTo(target),
			"delivered no debe transicionar a %s", target)
		assert.False(t, entity.StatusCancelled.CanTransitionTo(target),
			"cancelled no debe transicionar a %s", target)
	}
}

// pending Y being_packed deben mostrar ambos el mensaje "not ready"
// (regresión del agrupamiento defectuoso de la condición en la UI anterior).
func TestNotReadyYet_IncluyePendingYBeingPacked(t *testing.T) {
	assert.True(t, entity.StatusPending.NotReadyYet())
	assert.True(t, entity.StatusBeingPacked.NotReadyYet())
	assert.True(t, entity.StatusOrderConfirmed.NotReadyYet())

	assert.False(t, entity.StatusReadyForPickup.NotReadyYet())
	assert.False(t, entity.StatusOutForDelivery.NotReadyYet())
	assert.False(t, entity.StatusDelivered.NotReadyYet())
	assert.False(t, entity.StatusCancelled.NotReadyYet())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, entity.StatusDelivered.IsTerminal())
	assert.True(t, entity.StatusCancelled.IsTerminal())
	assert.False(t, entity.StatusOutForDelivery.IsTerminal())
	assert.False(t, entity.StatusPending.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	st, ok := entity.ParseStatus("out_for_delivery")
	require.True(t, ok)
	assert.Equal(t, entity.StatusOutForDelivery, st)

	// Ningún string fuera del enum es válido
	for _, bad := range []string{"", "OUT_FOR_DELIVERY", "shipped", "pending "} {
		_, ok := entity.ParseStatus(bad)
		assert.False(t, ok, "%q no debe parsear", bad)
	}
}

func TestItemCount_PedidoVacioEsValido(t *testing.T) {
	o := &entity.Order{}
	assert.Equal(t, 0, o.ItemCount())

	o.Items = []entity.OrderItem{
		{Product: entity.Product{ID: "p1", Name: "Café"}, Quantity: 2},
		{Product: entity.Product{ID: "p2", Name: "Pan"}, Quantity: 3},
	}
	assert.Equal(t, 5, o.ItemCount())
}
