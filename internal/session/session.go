// Package session wraps one game in the concurrency contract the engine
// itself does not provide: an exclusive write lock around turn execution,
// idempotent per-player order submission, and a UI hint for whose input
// the game is waiting on.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/space-conquest/pkg/conquest"
)

// Hint tells a UI what the session is waiting for. It is advisory only
// and never part of the game-logic state machine.
type Hint string

const (
	HintAwaitingOrders Hint = "awaiting_orders"
	HintAIThinking     Hint = "ai_thinking"
)

var ErrCompleted = errors.New("session: game already completed")

// Session owns one running game. All methods are safe for concurrent use;
// readers share an RLock and see only turn-boundary states.
type Session struct {
	ID uuid.UUID

	mu        sync.RWMutex
	game      *conquest.Game
	submitted map[conquest.Owner][]conquest.Order
	hint      Hint
	lastTurn  *conquest.TurnResult
}

// New starts a session over a fresh or loaded game.
func New(g *conquest.Game) *Session {
	return &Session{
		ID:        uuid.New(),
		game:      g,
		submitted: make(map[conquest.Owner][]conquest.Order),
		hint:      HintAwaitingOrders,
	}
}

// Turn returns the current turn number.
func (s *Session) Turn() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Turn
}

// Hint reports what the session is currently waiting on.
func (s *Session) Hint() Hint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hint
}

// SetThinking flips the UI hint while an AI decision is in flight.
func (s *Session) SetThinking(thinking bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if thinking {
		s.hint = HintAIThinking
	} else {
		s.hint = HintAwaitingOrders
	}
}

// Completed reports whether the game has ended.
func (s *Session) Completed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Phase == conquest.PhaseCompleted
}

// Winner returns the game outcome, empty while running.
func (s *Session) Winner() conquest.Winner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Winner
}

// LastResult returns the events of the most recently executed turn, or
// nil before the first turn resolves.
func (s *Session) LastResult() *conquest.TurnResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTurn
}

// Observe builds the fog-of-war view for one player at the current turn
// boundary. Any number of observers may run concurrently.
func (s *Session) Observe(player conquest.Owner) (*conquest.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return conquest.Observe(s.game, player)
}

// QueryStar answers a single-star lookup under the same fog rules.
func (s *Session) QueryStar(player conquest.Owner, id conquest.StarID) (*conquest.StarView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return conquest.QueryStar(s.game, player, id)
}

// SubmitOrders records one player's orders for the current turn.
// Submission is idempotent per player per turn: a resubmission replaces
// the previous list. Once both players have submitted, the turn executes
// and the result is returned; until then the result is nil.
func (s *Session) SubmitOrders(player conquest.Owner, orders []conquest.Order) (*conquest.TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Phase == conquest.PhaseCompleted {
		return nil, ErrCompleted
	}
	if v := conquest.ValidateOrders(s.game, player, orders); !v.Accepted {
		return nil, &conquest.RejectedOrdersError{Player: player, Errors: v.Errors}
	}

	s.submitted[player] = orders
	if len(s.submitted) < 2 {
		return nil, nil
	}

	next, res, err := conquest.ExecuteTurn(s.game, s.submitted[conquest.P1], s.submitted[conquest.P2])
	if err != nil {
		// Validation passed above; a failure here means concurrent state
		// drift, which the lock is supposed to make impossible.
		return nil, err
	}

	s.game = next
	s.lastTurn = res
	s.submitted = make(map[conquest.Owner][]conquest.Order)
	s.hint = HintAwaitingOrders

	ev := log.Debug().Str("sessionId", s.ID.String()).Int("turn", next.Turn)
	if res.Completed {
		ev = log.Info().Str("sessionId", s.ID.String()).Str("winner", string(res.Winner))
	}
	ev.Int("events", len(res.Events)).Msg("Turn resolved")

	return res, nil
}

// Snapshot serializes the current game for saving. Safe to call while
// other readers are observing.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return conquest.Save(s.game)
}
