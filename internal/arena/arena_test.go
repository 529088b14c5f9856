package arena

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeeve/space-conquest/internal/agent"
	"github.com/freeeve/space-conquest/pkg/conquest"
)

func TestRunMatch_HoldVsHoldTimesOut(t *testing.T) {
	res, err := RunMatch(context.Background(), MatchConfig{
		Seed:     1,
		MaxTurns: 30,
		P1:       agent.HoldStrategy{},
		P2:       agent.HoldStrategy{},
		Label:    "hold-vs-hold",
	})
	require.NoError(t, err)

	assert.True(t, res.TimedOut, "two holding players can never capture a home")
	assert.Equal(t, conquest.NoWinner, res.Winner)
	assert.Equal(t, 30, res.Turns)
}

// A passive player can never capture anything, so whatever else happens
// across seeds, hold must never be the winner.
func TestRunMatch_HoldNeverWins(t *testing.T) {
	for sd := int64(1); sd <= 5; sd++ {
		res, err := RunMatch(context.Background(), MatchConfig{
			Seed:     sd,
			MaxTurns: 120,
			P1:       &agent.HeuristicStrategy{},
			P2:       agent.HoldStrategy{},
		})
		require.NoError(t, err)
		assert.NotEqual(t, conquest.WinnerP2, res.Winner, "seed %d", sd)
	}
}

func TestRunMatch_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunMatch(ctx, MatchConfig{
		Seed: 1,
		P1:   agent.HoldStrategy{},
		P2:   agent.HoldStrategy{},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSeries(t *testing.T) {
	results, err := RunSeries(context.Background(), MatchConfig{
		Seed:     100,
		MaxTurns: 40,
		P1:       &agent.HeuristicStrategy{},
		P2:       agent.HoldStrategy{},
		Label:    "series",
	}, 4, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	seeds := make(map[int64]bool)
	for i, r := range results {
		require.NotNil(t, r, "match %d missing result", i)
		seeds[r.Seed] = true
	}
	assert.Len(t, seeds, 4, "each match should run a distinct seed")
}
