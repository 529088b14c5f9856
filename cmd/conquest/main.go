package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/space-conquest/internal/agent"
	"github.com/freeeve/space-conquest/internal/arena"
	"github.com/freeeve/space-conquest/internal/config"
	"github.com/freeeve/space-conquest/internal/logger"
	"github.com/freeeve/space-conquest/internal/session"
	"github.com/freeeve/space-conquest/pkg/conquest"
)

type options struct {
	Mode     string `long:"mode" choice:"hvh" choice:"hvl" choice:"lvl" default:"hvh" description:"human-vs-human, human-vs-llm, or llm-vs-llm"`
	Seed     int64  `long:"seed" description:"map seed (0 = derive from clock)"`
	Load     string `long:"load" description:"resume from a snapshot file" value-name:"FILE"`
	Save     string `long:"save" description:"write a snapshot here after every turn" value-name:"FILE"`
	TUI      bool   `long:"tui" description:"use the rich terminal UI if available"`
	Provider string `long:"provider" default:"openai" description:"LLM provider for llm players"`
	Model    string `long:"model" default:"gpt-4o" description:"model id for llm players"`
	Debug    bool   `long:"debug" description:"verbose logging"`
	Matches  int    `long:"matches" default:"1" description:"number of lvl matches to run"`
	Workers  int    `long:"workers" default:"1" description:"parallel lvl matches"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	logger.Init()
	if opts.Debug {
		logger.SetDebug()
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "conquest:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := config.Load()

	// Credential failures must happen before any game state exists.
	if opts.Mode == "hvl" || opts.Mode == "lvl" {
		spec := agent.ProviderSpec{Provider: opts.Provider, Model: opts.Model}
		if err := agent.CheckCredentials(cfg, spec); err != nil {
			return err
		}
	}

	if opts.TUI {
		fmt.Fprintln(os.Stderr, "conquest: rich TUI not built in; using the plain terminal interface")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down")
		cancel()
	}()

	if opts.Mode == "lvl" && opts.Matches > 1 {
		return runBatch(ctx, opts, seed)
	}

	g, err := openGame(opts, seed)
	if err != nil {
		return err
	}
	return playGame(ctx, opts, seed, g)
}

func openGame(opts options, seed int64) (*conquest.Game, error) {
	if opts.Load == "" {
		return conquest.NewGame(seed), nil
	}
	data, err := os.ReadFile(opts.Load)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.Load, err)
	}
	g, err := conquest.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.Load, err)
	}
	log.Info().Str("file", opts.Load).Int("turn", g.Turn).Msg("Resumed game")
	return g, nil
}

func playGame(ctx context.Context, opts options, seed int64, g *conquest.Game) error {
	s := session.New(g)
	in := bufio.NewScanner(os.Stdin)

	llm := map[conquest.Owner]bool{}
	switch opts.Mode {
	case "hvl":
		llm[conquest.P2] = true
	case "lvl":
		llm[conquest.P1] = true
		llm[conquest.P2] = true
	}
	for _, p := range conquest.Players() {
		if llm[p] {
			fmt.Printf("%s is played by %s (%s/%s)\n",
				p, agent.AdmiralName(seed, opts.Model), opts.Provider, opts.Model)
		}
	}

	for !s.Completed() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var res *conquest.TurnResult
		for _, p := range conquest.Players() {
			for {
				var orders []conquest.Order
				var err error
				if llm[p] {
					s.SetThinking(true)
					orders, err = llmOrders(s, p)
					s.SetThinking(false)
				} else {
					orders, err = humanOrders(s, p, in)
				}
				if err != nil {
					return err
				}

				res, err = s.SubmitOrders(p, orders)
				if err == nil {
					break
				}
				var rej *conquest.RejectedOrdersError
				if llm[p] || !errors.As(err, &rej) {
					return err
				}
				for _, msg := range rej.Errors {
					fmt.Println("  rejected:", msg)
				}
			}
		}

		if res != nil {
			printEvents(res)
		}
		if opts.Save != "" {
			data, err := s.Snapshot()
			if err != nil {
				return err
			}
			if err := os.WriteFile(opts.Save, data, 0644); err != nil {
				return fmt.Errorf("save %s: %w", opts.Save, err)
			}
		}
	}

	printOutcome(s.Winner())
	return nil
}

// llmOrders drives one AI turn through the same tool surface a real LLM
// client would use: observe, decide, stage via submit_orders.
func llmOrders(s *session.Session, p conquest.Owner) ([]conquest.Order, error) {
	data, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	g, err := conquest.Load(data)
	if err != nil {
		return nil, err
	}

	tb := agent.NewToolbox(g, p)
	out, err := tb.Handle("get_observation", nil)
	if err != nil {
		return nil, err
	}
	obs := out.(*conquest.Observation)

	orders := agent.StrategyForName("heuristic").DecideOrders(obs)
	args, err := json.Marshal(map[string]any{"orders": orders})
	if err != nil {
		return nil, err
	}
	if _, err := tb.Handle("submit_orders", args); err != nil {
		return nil, err
	}
	return tb.StagedOrders(), nil
}

// humanOrders prompts one player for this turn's orders on stdin. Orders
// are entered one per line as "FROM TO SHIPS"; a blank line ends the turn.
func humanOrders(s *session.Session, p conquest.Owner, in *bufio.Scanner) ([]conquest.Order, error) {
	obs, err := s.Observe(p)
	if err != nil {
		return nil, err
	}
	printObservation(obs)

	var orders []conquest.Order
	for {
		fmt.Printf("%s> ", p)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return nil, err
			}
			return nil, errors.New("input closed before the game ended")
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			return orders, nil
		}

		fields := strings.Fields(line)
		var ships int
		var parseErr error
		if len(fields) == 3 {
			ships, parseErr = strconv.Atoi(fields[2])
		}
		if len(fields) != 3 || parseErr != nil {
			fmt.Println("  usage: FROM TO SHIPS (blank line to finish)")
			continue
		}
		orders = append(orders, conquest.Order{
			From:  conquest.StarID(strings.ToUpper(fields[0])),
			To:    conquest.StarID(strings.ToUpper(fields[1])),
			Ships: ships,
		})
	}
}

func printObservation(obs *conquest.Observation) {
	fmt.Printf("\n== Turn %d: %s (home %s) ==\n", obs.Turn, obs.Player, obs.HomeStar)
	for _, v := range obs.Stars {
		line := fmt.Sprintf("  %-2s %-12s (%2d,%2d)", v.ID, v.Name, v.X, v.Y)
		if v.IsHome {
			line += " [home]"
		}
		if v.Owner != nil {
			line += fmt.Sprintf(" owner=%s ru=%d", *v.Owner, *v.BaseRU)
		}
		if v.Stationed != nil {
			line += fmt.Sprintf(" ships=%d", *v.Stationed)
		}
		fmt.Println(line)
	}
	for _, f := range obs.Fleets {
		fmt.Printf("  fleet %d: %s -> %s, %d ships, %d turns out\n",
			f.ID, f.Origin, f.Dest, f.Ships, f.TurnsRemaining)
	}
}

func printEvents(res *conquest.TurnResult) {
	for _, ev := range res.Events {
		switch e := ev.(type) {
		case conquest.CombatEvent:
			fmt.Printf("  battle at %s: %s(%d) vs %s(%d) -> %s survives %d/%d\n",
				e.Star, e.Attacker, e.AttackerShips, e.Defender, e.DefenderShips,
				e.Winner, e.AttackerSurvivors, e.DefenderSurvivors)
		case conquest.HyperspaceLossEvent:
			fmt.Printf("  fleet %d (%s, %d ships) lost in hyperspace\n", e.FleetID, e.Owner, e.Ships)
		case conquest.RebellionEvent:
			fmt.Printf("  rebellion at %s: %s\n", e.Star, e.Outcome)
		}
	}
}

func printOutcome(w conquest.Winner) {
	switch w {
	case conquest.WinnerDraw:
		fmt.Println("Mutual conquest: the war ends in a draw.")
	default:
		fmt.Printf("%s has captured the enemy home star and wins.\n", w)
	}
}

// runBatch plays an lvl series through the arena runner and prints
// aggregate results.
func runBatch(ctx context.Context, opts options, seed int64) error {
	cfg := arena.MatchConfig{
		Seed:  seed,
		P1:    agent.StrategyForName("heuristic"),
		P2:    agent.StrategyForName("heuristic"),
		Label: fmt.Sprintf("%s-%s", opts.Provider, opts.Model),
	}

	results, err := arena.RunSeries(ctx, cfg, opts.Matches, opts.Workers)
	if err != nil {
		return err
	}

	var p1, p2, draws, timeouts int
	for _, r := range results {
		switch {
		case r.TimedOut:
			timeouts++
		case r.Winner == conquest.WinnerP1:
			p1++
		case r.Winner == conquest.WinnerP2:
			p2++
		case r.Winner == conquest.WinnerDraw:
			draws++
		}
	}
	fmt.Printf("%d matches: p1 %d, p2 %d, draws %d, timeouts %d\n",
		len(results), p1, p2, draws, timeouts)
	return nil
}
