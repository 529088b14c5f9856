// Package arena runs unattended strategy-vs-strategy matches, for
// balance checks and for fuzzing the turn executor against itself.
package arena

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/space-conquest/internal/agent"
	"github.com/freeeve/space-conquest/pkg/conquest"
)

// MatchConfig configures a single strategy-vs-strategy game.
type MatchConfig struct {
	Seed     int64
	MaxTurns int // cap before declaring a timeout, 0 = default
	P1       agent.Strategy
	P2       agent.Strategy
	Label    string
}

// MatchResult describes the outcome of one completed match.
type MatchResult struct {
	Label    string          `json:"label"`
	Seed     int64           `json:"seed"`
	Winner   conquest.Winner `json:"winner"`
	Turns    int             `json:"turns"`
	TimedOut bool            `json:"timed_out"`
}

const defaultMaxTurns = 200

// RunMatch plays one full game between two strategies. Each strategy
// only ever sees its own fog-limited observation.
func RunMatch(ctx context.Context, cfg MatchConfig) (*MatchResult, error) {
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = defaultMaxTurns
	}

	g := conquest.NewGame(cfg.Seed)
	result := &MatchResult{Label: cfg.Label, Seed: cfg.Seed}

	for g.Phase == conquest.PhaseRunning {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.Turn >= cfg.MaxTurns {
			result.TimedOut = true
			break
		}

		p1Orders, err := decide(g, conquest.P1, cfg.P1)
		if err != nil {
			return nil, err
		}
		p2Orders, err := decide(g, conquest.P2, cfg.P2)
		if err != nil {
			return nil, err
		}

		next, _, err := conquest.ExecuteTurn(g, p1Orders, p2Orders)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", g.Turn, err)
		}
		g = next
	}

	result.Winner = g.Winner
	result.Turns = g.Turn
	log.Debug().Str("label", cfg.Label).Int64("seed", cfg.Seed).
		Str("winner", string(result.Winner)).Int("turns", result.Turns).
		Msg("Match finished")
	return result, nil
}

func decide(g *conquest.Game, player conquest.Owner, s agent.Strategy) ([]conquest.Order, error) {
	obs, err := conquest.Observe(g, player)
	if err != nil {
		return nil, err
	}
	orders := s.DecideOrders(obs)
	if v := conquest.ValidateOrders(g, player, orders); !v.Accepted {
		// A broken strategy forfeits its move rather than killing the run.
		log.Warn().Str("player", string(player)).Str("strategy", s.Name()).
			Strs("errors", v.Errors).Msg("Strategy produced invalid orders; holding")
		return nil, nil
	}
	return orders, nil
}

// RunSeries plays n matches concurrently, derived seeds cfg.Seed+i, with
// at most workers games in flight at once.
func RunSeries(ctx context.Context, cfg MatchConfig, n, workers int) ([]*MatchResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*MatchResult, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			mc := cfg
			mc.Seed = cfg.Seed + int64(idx)
			mc.Label = fmt.Sprintf("%s-%d", cfg.Label, idx+1)

			res, err := RunMatch(ctx, mc)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = res
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
