package agent

import (
	"sort"

	"github.com/freeeve/space-conquest/pkg/conquest"
)

// Strategy decides a player's orders for one turn from their fog-limited
// observation. Strategies never see the full game state; everything they
// know arrives through the Observation.
type Strategy interface {
	Name() string
	DecideOrders(obs *conquest.Observation) []conquest.Order
}

// StrategyForName returns the built-in strategy for a difficulty name.
func StrategyForName(name string) Strategy {
	switch name {
	case "hold":
		return &HoldStrategy{}
	case "random":
		return &RandomStrategy{}
	default:
		return &HeuristicStrategy{}
	}
}

// --- HoldStrategy ---

// HoldStrategy submits no orders and lets garrisons accumulate.
type HoldStrategy struct{}

func (HoldStrategy) Name() string { return "hold" }

func (HoldStrategy) DecideOrders(*conquest.Observation) []conquest.Order {
	return nil
}

// --- RandomStrategy ---

// RandomStrategy sends random-sized fleets from random owned stars to
// random destinations. Useful for fuzzing the executor and as a weak
// arena baseline.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "random" }

// DecideOrders picks, per owned star, ~50% chance to launch between 1 and
// all-but-one of its garrison at a uniformly random other star.
func (RandomStrategy) DecideOrders(obs *conquest.Observation) []conquest.Order {
	var orders []conquest.Order
	for _, src := range ownedStars(obs) {
		if *src.Stationed < 2 || agentFloat64() < 0.5 {
			continue
		}
		dests := otherStars(obs, src.ID)
		if len(dests) == 0 {
			continue
		}
		dest := dests[agentIntn(len(dests))]
		ships := 1 + agentIntn(*src.Stationed-1)
		orders = append(orders, conquest.Order{
			From:  src.ID,
			To:    dest.ID,
			Ships: ships,
		})
	}
	return orders
}

// --- HeuristicStrategy ---

// HeuristicStrategy expands toward nearby stars while keeping a defensive
// garrison at home. It attacks the enemy home once it has seen it and has
// a clear ship advantage.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return "heuristic" }

func (HeuristicStrategy) DecideOrders(obs *conquest.Observation) []conquest.Order {
	var orders []conquest.Order
	targeted := make(map[conquest.StarID]bool)
	for _, f := range obs.Fleets {
		targeted[f.Dest] = true
	}

	for _, src := range ownedStars(obs) {
		reserve := 1
		if src.ID == obs.HomeStar {
			// Keep the home defended against a rush.
			reserve = 4
		}
		spare := *src.Stationed - reserve
		if spare < 1 {
			continue
		}

		target, need := pickTarget(obs, src, targeted)
		if target == "" || spare < need {
			continue
		}
		targeted[target] = true
		orders = append(orders, conquest.Order{
			From:  src.ID,
			To:    target,
			Ships: spare,
		})
	}
	return orders
}

// pickTarget chooses the closest star worth taking from src: unvisited
// stars and known NPC or enemy stars, nearest first. The second return is
// a rough minimum force for the attack.
func pickTarget(obs *conquest.Observation, src conquest.StarView, targeted map[conquest.StarID]bool) (conquest.StarID, int) {
	type candidate struct {
		id   conquest.StarID
		dist int
		need int
	}
	var cands []candidate

	for _, s := range otherStars(obs, src.ID) {
		if targeted[s.ID] {
			continue
		}
		if s.Owner != nil && *s.Owner == obs.Player {
			continue
		}
		need := 2
		if s.BaseRU != nil {
			// Known garrison ceiling for an NPC star is its RU.
			need = *s.BaseRU + 1
		}
		if s.IsHome && s.ID != obs.HomeStar {
			need = 8
		}
		d := manhattan(src.X, src.Y, s.X, s.Y)
		cands = append(cands, candidate{id: s.ID, dist: d, need: need})
	}
	if len(cands) == 0 {
		return "", 0
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].id < cands[j].id
	})
	return cands[0].id, cands[0].need
}

func ownedStars(obs *conquest.Observation) []conquest.StarView {
	var owned []conquest.StarView
	for _, s := range obs.Stars {
		if s.Stationed != nil {
			owned = append(owned, s)
		}
	}
	return owned
}

func otherStars(obs *conquest.Observation, except conquest.StarID) []conquest.StarView {
	var out []conquest.StarView
	for _, s := range obs.Stars {
		if s.ID != except {
			out = append(out, s)
		}
	}
	return out
}

func manhattan(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
