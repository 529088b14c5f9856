package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeeve/space-conquest/pkg/conquest"
)

func TestSubmitOrders_ExecutesWhenBothIn(t *testing.T) {
	s := New(conquest.NewGame(4))

	res, err := s.SubmitOrders(conquest.P1, nil)
	require.NoError(t, err)
	assert.Nil(t, res, "turn must not resolve with one submission")
	assert.Equal(t, 0, s.Turn())

	res, err = s.SubmitOrders(conquest.P2, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, s.Turn())
	assert.Equal(t, res, s.LastResult())
}

// A resubmission replaces the earlier list rather than stacking on it.
func TestSubmitOrders_Idempotent(t *testing.T) {
	// Pick a seed whose next draw is not a hyperspace loss, so the test
	// fleet is still observable after the turn resolves.
	var g *conquest.Game
	for sd := int64(1); ; sd++ {
		g = conquest.NewGame(sd)
		if g.Rng.Clone().UniformInt(conquest.HyperspaceLossDie) != 0 {
			break
		}
	}
	home := g.PlayerState[conquest.P1].Home
	var dest conquest.StarID
	for _, id := range g.StarIDs() {
		if id != home {
			dest = id
			break
		}
	}
	s := New(g)

	_, err := s.SubmitOrders(conquest.P1, []conquest.Order{{From: home, To: dest, Ships: 3}})
	require.NoError(t, err)
	_, err = s.SubmitOrders(conquest.P1, []conquest.Order{{From: home, To: dest, Ships: 1}})
	require.NoError(t, err)

	res, err := s.SubmitOrders(conquest.P2, nil)
	require.NoError(t, err)
	require.NotNil(t, res)

	obs, err := s.Observe(conquest.P1)
	require.NoError(t, err)
	require.Len(t, obs.Fleets, 1)
	assert.Equal(t, 1, obs.Fleets[0].Ships, "second submission should replace the first")
}

func TestSubmitOrders_RejectsInvalid(t *testing.T) {
	g := conquest.NewGame(4)
	home := g.PlayerState[conquest.P1].Home
	s := New(g)

	_, err := s.SubmitOrders(conquest.P1, []conquest.Order{{From: home, To: home, Ships: 1}})
	var rej *conquest.RejectedOrdersError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, conquest.P1, rej.Player)

	// A rejected submission must not count toward turn execution.
	res, err := s.SubmitOrders(conquest.P2, nil)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestHint(t *testing.T) {
	s := New(conquest.NewGame(4))
	assert.Equal(t, HintAwaitingOrders, s.Hint())

	s.SetThinking(true)
	assert.Equal(t, HintAIThinking, s.Hint())
	s.SetThinking(false)
	assert.Equal(t, HintAwaitingOrders, s.Hint())
}

// endgame builds a game one turn away from a p1 victory: an
// overwhelming fleet arrives at p2's home next turn. The rng seed is
// chosen so the fleet survives its final hyperspace roll.
func endgame(t *testing.T) *conquest.Game {
	t.Helper()
	var rng *conquest.Rand
	for sd := int64(0); ; sd++ {
		r := conquest.NewRand(sd)
		if r.Clone().UniformInt(conquest.HyperspaceLossDie) != 0 {
			rng = r
			break
		}
	}

	return &conquest.Game{
		Phase: conquest.PhaseRunning,
		Stars: map[conquest.StarID]*conquest.Star{
			"A": {ID: "A", Name: "A", X: 0, Y: 0, BaseRU: 4, IsHome: true, Owner: conquest.P1, Stationed: 4},
			"B": {ID: "B", Name: "B", X: 8, Y: 0, BaseRU: 4, IsHome: true, Owner: conquest.P2, Stationed: 1},
		},
		Fleets: []conquest.Fleet{
			{ID: 0, Owner: conquest.P1, Origin: "A", Dest: "B", Ships: 20, TurnsRemaining: 1},
		},
		PlayerState: map[conquest.Owner]*conquest.Player{
			conquest.P1: {ID: conquest.P1, Home: "A", Visited: map[conquest.StarID]bool{"A": true}},
			conquest.P2: {ID: conquest.P2, Home: "B", Visited: map[conquest.StarID]bool{"B": true}},
		},
		Rng:         rng,
		NextFleetID: 1,
	}
}

func TestSubmitOrders_AfterCompletion(t *testing.T) {
	s := New(endgame(t))

	_, err := s.SubmitOrders(conquest.P1, nil)
	require.NoError(t, err)
	res, err := s.SubmitOrders(conquest.P2, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.True(t, res.Completed)
	assert.Equal(t, conquest.WinnerP1, s.Winner())
	assert.True(t, s.Completed())

	_, err = s.SubmitOrders(conquest.P1, nil)
	assert.ErrorIs(t, err, ErrCompleted)
}

// Concurrent observers must never block each other or see a mid-turn state.
func TestObserve_ConcurrentReaders(t *testing.T) {
	s := New(conquest.NewGame(8))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				obs, err := s.Observe(conquest.P1)
				if err != nil {
					t.Error(err)
					return
				}
				for _, v := range obs.Stars {
					if v.Stationed != nil && *v.Stationed < 0 {
						t.Error("observed negative garrison")
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 10 && !s.Completed(); i++ {
		_, err := s.SubmitOrders(conquest.P1, nil)
		require.NoError(t, err)
		_, err = s.SubmitOrders(conquest.P2, nil)
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()
}

func TestSnapshot_RoundTripsThroughEngine(t *testing.T) {
	s := New(conquest.NewGame(4))
	_, err := s.SubmitOrders(conquest.P1, nil)
	require.NoError(t, err)
	_, err = s.SubmitOrders(conquest.P2, nil)
	require.NoError(t, err)

	data, err := s.Snapshot()
	require.NoError(t, err)

	g, err := conquest.Load(data)
	require.NoError(t, err)
	assert.Equal(t, s.Turn(), g.Turn)
}
