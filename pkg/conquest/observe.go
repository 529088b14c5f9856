package conquest

import "fmt"

// Rules are the static numeric constants exposed to agents so an
// external decision loop never has to hard-code engine behavior.
type Rules struct {
	HyperspaceLoss    float64 `json:"hyperspace_loss"`
	RebellionChance   float64 `json:"rebellion_chance"`
	ProductionFormula string  `json:"production_formula"`
}

// StaticRules returns the rule constants for the current engine version.
func StaticRules() Rules {
	return Rules{
		HyperspaceLoss:    HyperspaceLossChance,
		RebellionChance:   RebellionChance,
		ProductionFormula: "each owned star produces base_ru ships per turn",
	}
}

// StarView is a fog-of-war-filtered projection of one star. Identity and
// position are always known; BaseRU and Owner require having visited the
// star; Stationed is only ever revealed for stars the viewer currently
// owns. Nil means unknown, and callers must treat it that way.
type StarView struct {
	ID        StarID `json:"id"`
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	IsHome    bool   `json:"is_home"`
	BaseRU    *int   `json:"base_ru,omitempty"`
	Owner     *Owner `json:"owner,omitempty"`
	Stationed *int   `json:"stationed_ships,omitempty"`
}

// FleetView projects one of the viewer's own fleets. Enemy fleets are
// never observable in transit.
type FleetView struct {
	ID             int    `json:"id"`
	Origin         StarID `json:"origin"`
	Dest           StarID `json:"dest"`
	Ships          int    `json:"ships"`
	TurnsRemaining int    `json:"turns_remaining"`
}

// Observation is everything one player may know at a turn boundary.
type Observation struct {
	Turn     int         `json:"turn"`
	Phase    Phase       `json:"phase"`
	Player   Owner       `json:"player"`
	HomeStar StarID      `json:"home_star"`
	Stars    []StarView  `json:"stars"`
	Fleets   []FleetView `json:"fleets"`
	Rules    Rules       `json:"rules"`
	Winner   Winner      `json:"winner,omitempty"`
}

// Observe builds the fog-of-war view for one player. It is pure and
// read-only; any number of observers may run concurrently against the
// same state.
func Observe(g *Game, player Owner) (*Observation, error) {
	p := g.PlayerState[player]
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
	}

	obs := &Observation{
		Turn:     g.Turn,
		Phase:    g.Phase,
		Player:   player,
		HomeStar: p.Home,
		Rules:    StaticRules(),
		Winner:   g.Winner,
	}

	for _, id := range g.StarIDs() {
		obs.Stars = append(obs.Stars, starView(g.Stars[id], p))
	}
	for _, f := range g.FleetsOf(player) {
		obs.Fleets = append(obs.Fleets, FleetView{
			ID:             f.ID,
			Origin:         f.Origin,
			Dest:           f.Dest,
			Ships:          f.Ships,
			TurnsRemaining: f.TurnsRemaining,
		})
	}
	return obs, nil
}

// QueryStar returns the fog-filtered view of a single star. The second
// return is false for unknown ids; that is a result, not an error.
func QueryStar(g *Game, player Owner, id StarID) (*StarView, bool) {
	p := g.PlayerState[player]
	if p == nil {
		return nil, false
	}
	s := g.Stars[id]
	if s == nil {
		return nil, false
	}
	v := starView(s, p)
	return &v, true
}

func starView(s *Star, p *Player) StarView {
	v := StarView{
		ID:     s.ID,
		Name:   s.Name,
		X:      s.X,
		Y:      s.Y,
		IsHome: s.IsHome,
	}
	if p.Visited[s.ID] {
		ru := s.BaseRU
		owner := s.Owner
		v.BaseRU = &ru
		v.Owner = &owner
	}
	// The fog bright line: garrison counts only for currently-owned stars.
	if s.Owner == p.ID {
		n := s.Stationed
		v.Stationed = &n
	}
	return v
}
