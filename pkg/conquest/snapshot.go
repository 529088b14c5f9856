package conquest

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// SnapshotVersion is bumped on any breaking change to the wire format.
const SnapshotVersion = 1

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// snapshot is the stable on-disk representation of a Game. The RNG state
// is a decimal string because a uint64 does not survive a round trip
// through JSON numbers.
type snapshot struct {
	Version  int            `json:"version"`
	Turn     int            `json:"turn"`
	Phase    Phase          `json:"phase"`
	RngState string         `json:"rng_state"`
	NextFlID int            `json:"next_fleet_id"`
	Stars    []starRecord   `json:"stars"`
	Fleets   []fleetRecord  `json:"fleets"`
	Players  []playerRecord `json:"players"`
	Winner   Winner         `json:"winner,omitempty"`
}

type starRecord struct {
	ID        StarID `json:"id"`
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	BaseRU    int    `json:"base_ru"`
	IsHome    bool   `json:"is_home"`
	Owner     Owner  `json:"owner"`
	Stationed int    `json:"stationed_ships"`
}

type fleetRecord struct {
	ID             int    `json:"id"`
	Owner          Owner  `json:"owner"`
	Origin         StarID `json:"origin"`
	Dest           StarID `json:"dest"`
	Ships          int    `json:"ships"`
	TurnsRemaining int    `json:"turns_remaining"`
}

type playerRecord struct {
	ID      Owner    `json:"id"`
	Home    StarID   `json:"home_star_id"`
	Visited []StarID `json:"visited_star_ids"`
}

// Save serializes the full game state, including the RNG position, so a
// loaded game replays identically to the original.
func Save(g *Game) ([]byte, error) {
	snap := snapshot{
		Version:  SnapshotVersion,
		Turn:     g.Turn,
		Phase:    g.Phase,
		RngState: strconv.FormatUint(g.Rng.State(), 10),
		NextFlID: g.NextFleetID,
		Winner:   g.Winner,
	}

	for _, id := range g.StarIDs() {
		s := g.Stars[id]
		snap.Stars = append(snap.Stars, starRecord{
			ID:        s.ID,
			Name:      s.Name,
			X:         s.X,
			Y:         s.Y,
			BaseRU:    s.BaseRU,
			IsHome:    s.IsHome,
			Owner:     s.Owner,
			Stationed: s.Stationed,
		})
	}

	for _, f := range g.Fleets {
		snap.Fleets = append(snap.Fleets, fleetRecord{
			ID:             f.ID,
			Owner:          f.Owner,
			Origin:         f.Origin,
			Dest:           f.Dest,
			Ships:          f.Ships,
			TurnsRemaining: f.TurnsRemaining,
		})
	}

	for _, pid := range Players() {
		p := g.PlayerState[pid]
		visited := make([]StarID, 0, len(p.Visited))
		for id := range p.Visited {
			visited = append(visited, id)
		}
		sort.Slice(visited, func(i, j int) bool { return visited[i] < visited[j] })
		snap.Players = append(snap.Players, playerRecord{
			ID:      pid,
			Home:    p.Home,
			Visited: visited,
		})
	}

	return json.MarshalIndent(snap, "", "  ")
}

// Load reconstructs a Game from Save output. Import is all-or-nothing:
// any structural or invariant failure rejects the whole snapshot.
func Load(data []byte) (*Game, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrInvalidSnapshot, snap.Version, SnapshotVersion)
	}

	rngState, err := strconv.ParseUint(snap.RngState, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad rng_state %q", ErrInvalidSnapshot, snap.RngState)
	}

	g := &Game{
		Turn:        snap.Turn,
		Phase:       snap.Phase,
		Stars:       make(map[StarID]*Star, len(snap.Stars)),
		PlayerState: make(map[Owner]*Player, len(snap.Players)),
		Rng:         RestoreRand(rngState),
		Winner:      snap.Winner,
	}

	for _, r := range snap.Stars {
		if g.Stars[r.ID] != nil {
			return nil, fmt.Errorf("%w: duplicate star %s", ErrInvalidSnapshot, r.ID)
		}
		g.Stars[r.ID] = &Star{
			ID:        r.ID,
			Name:      r.Name,
			X:         r.X,
			Y:         r.Y,
			BaseRU:    r.BaseRU,
			IsHome:    r.IsHome,
			Owner:     r.Owner,
			Stationed: r.Stationed,
		}
	}

	for _, r := range snap.Fleets {
		g.Fleets = append(g.Fleets, Fleet{
			ID:             r.ID,
			Owner:          r.Owner,
			Origin:         r.Origin,
			Dest:           r.Dest,
			Ships:          r.Ships,
			TurnsRemaining: r.TurnsRemaining,
		})
	}
	g.NextFleetID = snap.NextFlID

	for _, r := range snap.Players {
		if !r.ID.IsPlayer() {
			return nil, fmt.Errorf("%w: invalid player id %q", ErrInvalidSnapshot, r.ID)
		}
		if g.PlayerState[r.ID] != nil {
			return nil, fmt.Errorf("%w: duplicate player %s", ErrInvalidSnapshot, r.ID)
		}
		p := &Player{ID: r.ID, Home: r.Home, Visited: make(map[StarID]bool, len(r.Visited))}
		for _, id := range r.Visited {
			p.Visited[id] = true
		}
		g.PlayerState[r.ID] = p
	}

	if err := g.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return g, nil
}
