package conquest

import "sort"

// TurnResult reports what happened during one executed turn.
type TurnResult struct {
	Events    []Event
	Winner    Winner
	Completed bool
}

// ExecuteTurn advances the game one turn given both players' orders and
// returns the post-turn state. The receiver state is never mutated, so
// concurrent readers of the pre-turn snapshot are safe.
//
// Sub-phases run in a fixed order (validation, fleet spawn, hyperspace
// loss, travel, combat, rebellion, production, visibility, victory) and
// every random draw happens through the game's single Rand inside that
// order, which is what makes replays reproducible.
func ExecuteTurn(g *Game, p1Orders, p2Orders []Order) (*Game, *TurnResult, error) {
	if g.Phase == PhaseCompleted {
		return nil, nil, ErrGameCompleted
	}
	if v := ValidateOrders(g, P1, p1Orders); !v.Accepted {
		return nil, nil, &RejectedOrdersError{Player: P1, Errors: v.Errors}
	}
	if v := ValidateOrders(g, P2, p2Orders); !v.Accepted {
		return nil, nil, &RejectedOrdersError{Player: P2, Errors: v.Errors}
	}

	next := g.Clone()
	res := &TurnResult{}

	// Spawn fleets from accepted orders, p1 first. Fleet ids stay
	// monotonic, which fixes the hyperspace draw order below.
	spawn := func(player Owner, orders []Order) {
		for _, o := range orders {
			dist, _ := next.Distance(o.From, o.To)
			next.Stars[o.From].Stationed -= o.Ships
			next.Fleets = append(next.Fleets, Fleet{
				ID:             next.NextFleetID,
				Owner:          player,
				Origin:         o.From,
				Dest:           o.To,
				Ships:          o.Ships,
				TurnsRemaining: dist,
			})
			next.NextFleetID++
		}
	}
	spawn(P1, p1Orders)
	spawn(P2, p2Orders)

	// Hyperspace loss: one draw per fleet in id order.
	surviving := next.Fleets[:0]
	for _, f := range next.Fleets {
		if next.Rng.UniformInt(HyperspaceLossDie) == 0 {
			res.Events = append(res.Events, HyperspaceLossEvent{
				FleetID: f.ID,
				Owner:   f.Owner,
				Origin:  f.Origin,
				Dest:    f.Dest,
				Ships:   f.Ships,
			})
			continue
		}
		surviving = append(surviving, f)
	}
	next.Fleets = surviving

	// Travel.
	for i := range next.Fleets {
		next.Fleets[i].TurnsRemaining--
	}

	// Collect arrivals per destination; the rest stay in transit.
	arrivals := make(map[StarID][]Fleet)
	inTransit := next.Fleets[:0]
	for _, f := range next.Fleets {
		if f.TurnsRemaining == 0 {
			arrivals[f.Dest] = append(arrivals[f.Dest], f)
			continue
		}
		inTransit = append(inTransit, f)
	}
	next.Fleets = inTransit
	if len(next.Fleets) == 0 {
		next.Fleets = nil
	}

	// Combat at each contested star, in star-id order.
	contested := make([]StarID, 0, len(arrivals))
	for id := range arrivals {
		contested = append(contested, id)
	}
	sort.Slice(contested, func(i, j int) bool { return contested[i] < contested[j] })

	capturedThisTurn := make(map[StarID]bool)
	foughtAt := make(map[Owner][]StarID)
	for _, id := range contested {
		sr := resolveStar(next.Stars[id], arrivals[id])
		res.Events = append(res.Events, sr.events...)
		if sr.captured {
			capturedThisTurn[id] = true
		}
		for _, pid := range sr.fought {
			foughtAt[pid] = append(foughtAt[pid], id)
		}
	}

	// Rebellion: under-garrisoned, non-home player stars may revert to
	// NPC control. One percent draw per qualifying star, in id order.
	for _, id := range next.StarIDs() {
		s := next.Stars[id]
		if !s.Owner.IsPlayer() || s.IsHome || s.Stationed >= s.BaseRU {
			continue
		}
		ev := RebellionEvent{
			Star:           id,
			GarrisonBefore: s.Stationed,
			RebelShips:     s.BaseRU,
		}
		if next.Rng.Percent() < RebellionChance {
			s.Owner = NPC
			s.Stationed = s.BaseRU
			ev.Outcome = RebellionLost
		} else {
			ev.Outcome = RebellionSuppressed
		}
		ev.GarrisonAfter = s.Stationed
		res.Events = append(res.Events, ev)
	}

	// Production: each player-owned star builds BaseRU ships. Stars
	// captured this turn start producing next turn.
	for _, id := range next.StarIDs() {
		s := next.Stars[id]
		if !s.Owner.IsPlayer() || capturedThisTurn[id] {
			continue
		}
		s.Stationed += s.BaseRU
		res.Events = append(res.Events, ProductionEvent{
			Player:     s.Owner,
			Star:       id,
			ShipsAdded: s.BaseRU,
		})
	}

	// Visibility: players learn every star they now own or fought at.
	for _, pid := range Players() {
		p := next.PlayerState[pid]
		for _, id := range next.StarsOwnedBy(pid) {
			p.Visited[id] = true
		}
		for _, id := range foughtAt[pid] {
			p.Visited[id] = true
		}
	}

	// Victory: a player wins by holding the opponent's home; both at
	// once is a draw.
	res.Winner = checkVictory(next)
	if res.Winner != NoWinner {
		next.Phase = PhaseCompleted
		next.Winner = res.Winner
		res.Completed = true
	}

	next.Turn++
	return next, res, nil
}
