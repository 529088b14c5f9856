package conquest

import (
	"errors"
	"fmt"
	"sort"
)

// Grid and rule constants. Changing any of these breaks replay
// compatibility with existing snapshots.
const (
	GridWidth  = 12
	GridHeight = 10

	MinStars        = 10
	MaxStars        = 14
	HomeRU          = 4
	MinHomeDistance = 6

	// One fleet in HyperspaceLossDie is lost per turn in transit.
	HyperspaceLossDie    = 50
	HyperspaceLossChance = 1.0 / HyperspaceLossDie

	RebellionChance = 0.5
)

// StarID is a stable single-letter star identifier ('A'..).
type StarID string

// Owner identifies who controls a star or fleet.
type Owner string

const (
	NoOwner Owner = ""
	NPC     Owner = "npc"
	P1      Owner = "p1"
	P2      Owner = "p2"
)

// IsPlayer reports whether the owner is one of the two players.
func (o Owner) IsPlayer() bool {
	return o == P1 || o == P2
}

// Opponent returns the other player. Only meaningful for P1/P2.
func (o Owner) Opponent() Owner {
	switch o {
	case P1:
		return P2
	case P2:
		return P1
	}
	return NoOwner
}

// Players lists the two player ids in canonical order.
func Players() [2]Owner {
	return [2]Owner{P1, P2}
}

// Phase is the lifecycle state of a game.
type Phase string

const (
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
)

// Winner is the outcome of a completed game.
type Winner string

const (
	NoWinner   Winner = ""
	WinnerP1   Winner = "p1"
	WinnerP2   Winner = "p2"
	WinnerDraw Winner = "draw"
)

// Star is a single star on the grid.
type Star struct {
	ID        StarID
	Name      string
	X, Y      int
	BaseRU    int
	IsHome    bool
	Owner     Owner
	Stationed int
}

// Fleet is a group of ships in transit between two stars.
type Fleet struct {
	ID             int
	Owner          Owner
	Origin         StarID
	Dest           StarID
	Ships          int
	TurnsRemaining int
}

// Player holds per-player intel state.
type Player struct {
	ID      Owner
	Home    StarID
	Visited map[StarID]bool // stars ever owned or fought at
}

// Game is a complete snapshot of the world at a turn boundary.
// ExecuteTurn never mutates its receiver; it clones first, so a Game
// held by a reader is stable for the lifetime of that reference.
type Game struct {
	Turn        int
	Phase       Phase
	Stars       map[StarID]*Star
	Fleets      []Fleet // ordered by fleet id
	PlayerState map[Owner]*Player
	Rng         *Rand
	NextFleetID int
	Winner      Winner
}

var (
	// ErrGameCompleted is returned when a turn is executed on a finished game.
	ErrGameCompleted = errors.New("game already completed")
	// ErrUnknownStar is returned for star ids not present on the map.
	ErrUnknownStar = errors.New("unknown star")
	// ErrUnknownPlayer is returned for ids other than p1/p2.
	ErrUnknownPlayer = errors.New("unknown player")
)

// StarIDs returns all star ids in lexicographic order. Every loop that
// draws randomness or emits events iterates in this order so replays match.
func (g *Game) StarIDs() []StarID {
	ids := make([]StarID, 0, len(g.Stars))
	for id := range g.Stars {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Star returns the star with the given id, or nil.
func (g *Game) Star(id StarID) *Star {
	return g.Stars[id]
}

// Player returns the state for the given player id, or nil.
func (g *Game) Player(id Owner) *Player {
	return g.PlayerState[id]
}

// StarsOwnedBy returns the ids of stars currently owned by the given
// owner, in lexicographic order.
func (g *Game) StarsOwnedBy(owner Owner) []StarID {
	var ids []StarID
	for _, id := range g.StarIDs() {
		if g.Stars[id].Owner == owner {
			ids = append(ids, id)
		}
	}
	return ids
}

// FleetsOf returns the fleets belonging to the given owner, in id order.
func (g *Game) FleetsOf(owner Owner) []Fleet {
	var fleets []Fleet
	for _, f := range g.Fleets {
		if f.Owner == owner {
			fleets = append(fleets, f)
		}
	}
	return fleets
}

// TotalShips returns stationed plus in-transit ships for the given owner.
func (g *Game) TotalShips(owner Owner) int {
	total := 0
	for _, s := range g.Stars {
		if s.Owner == owner {
			total += s.Stationed
		}
	}
	for _, f := range g.Fleets {
		if f.Owner == owner {
			total += f.Ships
		}
	}
	return total
}

// Clone returns a deep copy of the Game. Mutations to the clone do not
// affect the original; ExecuteTurn relies on this to keep the pre-turn
// snapshot intact for concurrent readers.
func (g *Game) Clone() *Game {
	c := &Game{
		Turn:        g.Turn,
		Phase:       g.Phase,
		NextFleetID: g.NextFleetID,
		Winner:      g.Winner,
	}
	if g.Stars != nil {
		c.Stars = make(map[StarID]*Star, len(g.Stars))
		for id, s := range g.Stars {
			cp := *s
			c.Stars[id] = &cp
		}
	}
	if g.Fleets != nil {
		c.Fleets = make([]Fleet, len(g.Fleets))
		copy(c.Fleets, g.Fleets)
	}
	if g.PlayerState != nil {
		c.PlayerState = make(map[Owner]*Player, len(g.PlayerState))
		for id, p := range g.PlayerState {
			cp := &Player{ID: p.ID, Home: p.Home}
			if p.Visited != nil {
				cp.Visited = make(map[StarID]bool, len(p.Visited))
				for k, v := range p.Visited {
					cp.Visited[k] = v
				}
			}
			c.PlayerState[id] = cp
		}
	}
	if g.Rng != nil {
		c.Rng = g.Rng.Clone()
	}
	return c
}

// CheckInvariants verifies the structural invariants that must hold at
// every turn boundary. A non-nil return means the state is corrupt;
// the engine never attempts to repair it.
func (g *Game) CheckInvariants() error {
	if g.Turn < 0 {
		return fmt.Errorf("negative turn %d", g.Turn)
	}
	if g.Phase != PhaseRunning && g.Phase != PhaseCompleted {
		return fmt.Errorf("invalid phase %q", g.Phase)
	}
	if g.Rng == nil {
		return errors.New("missing rng state")
	}

	seenCoord := make(map[[2]int]StarID)
	for _, id := range g.StarIDs() {
		s := g.Stars[id]
		if s.ID != id {
			return fmt.Errorf("star %s: key/id mismatch %s", id, s.ID)
		}
		if s.X < 0 || s.X >= GridWidth || s.Y < 0 || s.Y >= GridHeight {
			return fmt.Errorf("star %s: coordinates (%d,%d) out of grid", id, s.X, s.Y)
		}
		coord := [2]int{s.X, s.Y}
		if other, dup := seenCoord[coord]; dup {
			return fmt.Errorf("stars %s and %s share cell (%d,%d)", other, id, s.X, s.Y)
		}
		seenCoord[coord] = id
		if s.BaseRU < 1 || s.BaseRU > 5 {
			return fmt.Errorf("star %s: base RU %d out of range", id, s.BaseRU)
		}
		if s.Stationed < 0 {
			return fmt.Errorf("star %s: negative stationed ships %d", id, s.Stationed)
		}
		switch s.Owner {
		case NoOwner, NPC, P1, P2:
		default:
			return fmt.Errorf("star %s: invalid owner %q", id, s.Owner)
		}
		if s.IsHome {
			if s.BaseRU != HomeRU {
				return fmt.Errorf("home star %s: RU %d, want %d", id, s.BaseRU, HomeRU)
			}
		}
	}

	for _, pid := range Players() {
		p := g.PlayerState[pid]
		if p == nil {
			return fmt.Errorf("missing player %s", pid)
		}
		home := g.Stars[p.Home]
		if home == nil {
			return fmt.Errorf("player %s: home star %s does not exist", pid, p.Home)
		}
		if !home.IsHome {
			return fmt.Errorf("player %s: star %s is not flagged as a home", pid, p.Home)
		}
		for _, id := range g.StarsOwnedBy(pid) {
			if !p.Visited[id] {
				return fmt.Errorf("player %s owns %s but has not visited it", pid, id)
			}
		}
		for id := range p.Visited {
			if g.Stars[id] == nil {
				return fmt.Errorf("player %s visited unknown star %s", pid, id)
			}
		}
	}
	if g.PlayerState[P1].Home == g.PlayerState[P2].Home {
		return fmt.Errorf("both players share home star %s", g.PlayerState[P1].Home)
	}
	for _, id := range g.StarIDs() {
		s := g.Stars[id]
		if s.IsHome && id != g.PlayerState[P1].Home && id != g.PlayerState[P2].Home {
			return fmt.Errorf("star %s flagged as home but assigned to no player", id)
		}
	}

	prevID := -1
	for _, f := range g.Fleets {
		if f.ID <= prevID {
			return fmt.Errorf("fleet ids out of order at %d", f.ID)
		}
		prevID = f.ID
		if f.ID >= g.NextFleetID {
			return fmt.Errorf("fleet %d >= next fleet id %d", f.ID, g.NextFleetID)
		}
		if !f.Owner.IsPlayer() {
			return fmt.Errorf("fleet %d: invalid owner %q", f.ID, f.Owner)
		}
		if f.Ships < 1 {
			return fmt.Errorf("fleet %d: ships %d < 1", f.ID, f.Ships)
		}
		// Fleets reaching zero are resolved and removed within the same
		// turn, so a zero-turn fleet can never exist at a turn boundary.
		if f.TurnsRemaining < 1 {
			return fmt.Errorf("fleet %d: turns remaining %d, want >= 1", f.ID, f.TurnsRemaining)
		}
		if g.Stars[f.Origin] == nil || g.Stars[f.Dest] == nil {
			return fmt.Errorf("fleet %d: unknown origin or destination", f.ID)
		}
	}

	return nil
}
