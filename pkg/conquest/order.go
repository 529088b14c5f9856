package conquest

import (
	"fmt"
	"strings"
)

// Order dispatches ships from one star to another. Orders are inputs to
// a turn; they are never persisted in the game state.
type Order struct {
	From  StarID `json:"from_star"`
	To    StarID `json:"to_star"`
	Ships int    `json:"ships"`
}

// Describe returns a human-readable description of the order.
func (o Order) Describe() string {
	return fmt.Sprintf("%s -> %s (%d ships)", o.From, o.To, o.Ships)
}

// OrderVerdict is the result of validating a player's order list.
// Acceptance is all-or-nothing: one bad order rejects the whole list.
type OrderVerdict struct {
	Accepted bool     `json:"accepted"`
	Errors   []string `json:"errors,omitempty"`
}

// RejectedOrdersError is returned by ExecuteTurn when a player's orders
// fail validation. The turn is not advanced and the state is unchanged.
type RejectedOrdersError struct {
	Player Owner
	Errors []string
}

func (e *RejectedOrdersError) Error() string {
	return fmt.Sprintf("orders rejected for %s: %s", e.Player, strings.Join(e.Errors, "; "))
}
