package conquest

import "fmt"

// ValidateOrders checks a player's order list against the current state.
// It is pure: the same state and orders always produce the same verdict.
//
// Rules: the source must be owned by the player, the destination must be
// a different known star, ship counts are positive, and the total ships
// committed from a single source must not exceed its current garrison.
func ValidateOrders(g *Game, player Owner, orders []Order) OrderVerdict {
	var errs []string

	if !player.IsPlayer() {
		return OrderVerdict{Errors: []string{fmt.Sprintf("unknown player %q", player)}}
	}

	committed := make(map[StarID]int)
	for i, o := range orders {
		from := g.Stars[o.From]
		if from == nil {
			errs = append(errs, fmt.Sprintf("order %d: unknown source star %q", i, o.From))
			continue
		}
		if g.Stars[o.To] == nil {
			errs = append(errs, fmt.Sprintf("order %d: unknown destination star %q", i, o.To))
			continue
		}
		if o.From == o.To {
			errs = append(errs, fmt.Sprintf("order %d: source and destination are both %s", i, o.From))
			continue
		}
		if o.Ships < 1 {
			errs = append(errs, fmt.Sprintf("order %d: must send at least 1 ship, got %d", i, o.Ships))
			continue
		}
		if from.Owner != player {
			errs = append(errs, fmt.Sprintf("order %d: %s does not control %s", i, player, o.From))
			continue
		}
		committed[o.From] += o.Ships
	}

	// Commitment constraint: checked per source across all of this
	// player's orders, reported in star-id order.
	if len(errs) == 0 {
		for _, id := range g.StarIDs() {
			total, ok := committed[id]
			if !ok {
				continue
			}
			if garrison := g.Stars[id].Stationed; total > garrison {
				errs = append(errs, fmt.Sprintf("%s: %d ships ordered but only %d stationed", id, total, garrison))
			}
		}
	}

	if len(errs) > 0 {
		return OrderVerdict{Errors: errs}
	}
	return OrderVerdict{Accepted: true}
}
