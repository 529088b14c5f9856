package conquest

import "testing"

// buildGame constructs a hand-laid-out galaxy for scenario tests. Stars
// A and B are the p1/p2 homes; visited sets start with owned stars.
func buildGame(t *testing.T, stars []*Star, seed int64) *Game {
	t.Helper()
	g := &Game{
		Phase:       PhaseRunning,
		Stars:       make(map[StarID]*Star),
		PlayerState: make(map[Owner]*Player),
		Rng:         NewRand(seed),
	}
	for _, s := range stars {
		g.Stars[s.ID] = s
	}
	for _, pid := range Players() {
		p := &Player{ID: pid, Visited: make(map[StarID]bool)}
		for _, s := range stars {
			if s.IsHome && s.Owner == pid {
				p.Home = s.ID
			}
			if s.Owner == pid {
				p.Visited[s.ID] = true
			}
		}
		g.PlayerState[pid] = p
	}
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("test game violates invariants: %v", err)
	}
	return g
}

// homeStar builds a standard home star for buildGame layouts.
func homeStar(id StarID, owner Owner, x, y, ships int) *Star {
	return &Star{ID: id, Name: string(id), X: x, Y: y, BaseRU: HomeRU, IsHome: true, Owner: owner, Stationed: ships}
}

func npcStar(id StarID, x, y, ru int) *Star {
	return &Star{ID: id, Name: string(id), X: x, Y: y, BaseRU: ru, Owner: NPC, Stationed: ru}
}

// randWhere searches seeds for a Rand whose upcoming draws satisfy the
// predicate. The predicate receives a clone, so the returned source is
// still positioned before the draws it promises.
func randWhere(t *testing.T, pred func(*Rand) bool) *Rand {
	t.Helper()
	for seed := int64(1); seed < 1_000_000; seed++ {
		r := NewRand(seed)
		if pred(r.Clone()) {
			return r
		}
	}
	t.Fatal("no rand state found matching predicate")
	return nil
}

// noLossFor returns a predicate matching sources whose next n hyperspace
// draws all miss.
func noLossFor(n int) func(*Rand) bool {
	return func(r *Rand) bool {
		for i := 0; i < n; i++ {
			if r.UniformInt(HyperspaceLossDie) == 0 {
				return false
			}
		}
		return true
	}
}
