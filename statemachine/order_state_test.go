package statemachine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"food-storefront/models"
)

// TestCanTransitionExhaustive checks every (from, to) pair against the
// intended lifecycle: strictly linear forward movement, CANCELLED reachable
// from any non-terminal state, no edges out of DELIVERED or CANCELLED.
func TestCanTransitionExhaustive(t *testing.T) {
	allowed := map[Transition]bool{
		{From: models.StatusPending, To: models.StatusConfirmed}:        true,
		{From: models.StatusPending, To: models.StatusCancelled}:        true,
		{From: models.StatusConfirmed, To: models.StatusPreparing}:      true,
		{From: models.StatusConfirmed, To: models.StatusCancelled}:      true,
		{From: models.StatusPreparing, To: models.StatusOutForDelivery}: true,
		{From: models.StatusPreparing, To: models.StatusCancelled}:      true,
		{From: models.StatusOutForDelivery, To: models.StatusDelivered}: true,
		{From: models.StatusOutForDelivery, To: models.StatusCancelled}: true,
	}

	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			want := allowed[Transition{From: from, To: to}]
			require.Equal(t, want, CanTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestCanTransitionRejectsSkippingStates(t *testing.T) {
	require.False(t, CanTransition(models.StatusPending, models.StatusPreparing))
	require.False(t, CanTransition(models.StatusPending, models.StatusDelivered))
	require.False(t, CanTransition(models.StatusConfirmed, models.StatusOutForDelivery))
}

func TestCanTransitionRejectsBackwardMovement(t *testing.T) {
	require.False(t, CanTransition(models.StatusConfirmed, models.StatusPending))
	require.False(t, CanTransition(models.StatusOutForDelivery, models.StatusPreparing))
	require.False(t, CanTransition(models.StatusDelivered, models.StatusOutForDelivery))
}

func TestSelfTransitionsAreInvalid(t *testing.T) {
	for _, s := range models.AllStatuses {
		require.False(t, CanTransition(s, s), "self transition %s", s)
	}
}

func TestTerminalStates(t *testing.T) {
	require.True(t, IsTerminal(models.StatusDelivered))
	require.True(t, IsTerminal(models.StatusCancelled))

	for _, s := range []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOutForDelivery,
	} {
		require.False(t, IsTerminal(s), "state %s", s)
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	require.Equal(t,
		[]models.OrderStatus{models.StatusConfirmed, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusPending))
	require.Equal(t,
		[]models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusOutForDelivery))
	require.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	require.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestDescribeValidFrom(t *testing.T) {
	require.Equal(t, "CONFIRMED, CANCELLED", DescribeValidFrom(models.StatusPending))
	require.Equal(t, "none (terminal state)", DescribeValidFrom(models.StatusDelivered))
}
