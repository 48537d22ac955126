package statemachine

import (
	"food-storefront/models"
)

// Transition defines a valid state change
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative state machine definition. Forward
// movement is strictly linear; CANCELLED is reachable from every
// non-terminal state.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusConfirmed, To: models.StatusPreparing},
	{From: models.StatusConfirmed, To: models.StatusCancelled},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery},
	{From: models.StatusPreparing, To: models.StatusCancelled},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered},
	{From: models.StatusOutForDelivery, To: models.StatusCancelled},
	// DELIVERED and CANCELLED are terminal: no outgoing edges.
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// CanTransition reports whether the edge from → to exists in the state
// machine. Pure function; callers decide how to surface a rejection.
func CanTransition(from, to models.OrderStatus) bool {
	return transitionMap[Transition{From: from, To: to}]
}

// IsTerminal reports whether no transitions leave the given state.
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// DescribeValidFrom renders the legal next states as a human-readable list.
func DescribeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
