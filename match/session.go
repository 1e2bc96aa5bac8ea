/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package match holds the per-team match state container and its undo stack.
package match

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mikeb26/tvvc-lineuptracker/lineup"
)

var (
	ErrNoTeamSelected  = errors.New("no team selected")
	ErrInvalidPosition = errors.New("position must be 1-6")
	ErrUnknownPlayer   = errors.New("player is not on the team roster")
	ErrAlreadyOnCourt  = errors.New("player is already on court")
	ErrInvalidSide     = errors.New("side must be us or them")
)

// Persister is the subset of store.Adapter a Session needs.
type Persister interface {
	Save(state *lineup.MatchState)
	Load(teamID string) (*lineup.MatchState, bool)
	Clear(teamID string)
}

// Session owns the current match state for one selected team. Every
// mutation pushes the prior state onto the undo stack and persists the new
// state. A Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	store   Persister
	now     func() time.Time
	newID   func() string
	team    *lineup.Team
	state   *lineup.MatchState
	undo    undoStack
	restore bool
}

type Option func(*Session)

// WithClock overrides the time source used for UpdatedAt and event stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithEventIDs overrides the generator used for event log ids.
func WithEventIDs(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// NewSession returns a Session with no team selected. A nil store disables
// persistence.
func NewSession(store Persister, opts ...Option) *Session {
	s := &Session{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) nowMillis() int64 {
	return s.now().UnixMilli()
}

// SelectTeam makes team current. A saved state for the team is used as-is;
// otherwise a fresh lineup is built from the roster. The undo stack is
// cleared either way. It reports whether a saved state was restored.
func (s *Session) SelectTeam(team *lineup.Team) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.team = team
	s.undo.clear()
	s.restore = false

	if s.store != nil {
		if saved, ok := s.store.Load(team.ID); ok {
			s.state = saved
			s.restore = true
			log.Printf("match.select: restored %v (%d-%d)", team.ID,
				saved.UsScore, saved.OppScore)
			return true
		}
	}

	s.state = lineup.NewMatchState(team, s.nowMillis())
	log.Printf("match.select: new lineup for %v", team.ID)
	return false
}

// Team returns the selected team, or nil.
func (s *Session) Team() *lineup.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.team
}

// Restored reports whether the current state came from storage.
func (s *Session) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restore
}

// State returns a copy of the current state, or nil before SelectTeam.
func (s *Session) State() *lineup.MatchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil
	}
	return s.state.Clone()
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool {
	return s.UndoDepth() > 0
}

func (s *Session) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.len()
}

// BenchPlayers resolves the bench to roster entries. Ids missing from the
// roster are dropped.
func (s *Session) BenchPlayers() []lineup.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil || s.team == nil {
		return nil
	}
	out := make([]lineup.Player, 0, len(s.state.Bench))
	for _, id := range s.state.Bench {
		if p, ok := s.team.Player(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// apply runs fn against a copy of the current state and, if fn reports a
// change, commits it: push the old state, stamp, log the event, persist.
func (s *Session) apply(fn func(next *lineup.MatchState) (*lineup.MatchEvent, bool)) error {
	if s.state == nil {
		return ErrNoTeamSelected
	}

	next := s.state.Clone()
	ev, changed := fn(next)
	if !changed {
		return nil
	}

	next.UpdatedAt = s.nowMillis()
	if ev != nil {
		ev.ID = s.newID()
		ev.Timestamp = next.UpdatedAt
		next.History = append(next.History, *ev)
	}

	s.undo.push(s.state)
	s.state = next
	if s.store != nil {
		s.store.Save(s.state.Clone())
	}
	return nil
}

// Substitute puts playerID into pos, sending any occupant to the bench.
//
// Unlike lineup.Substitute this validates its input: the position must be
// 1-6, the player must be on the roster, and the player may not already hold
// a different position. Re-seating a player in their own position is a no-op.
func (s *Session) Substitute(playerID string, pos lineup.PositionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return ErrNoTeamSelected
	}
	if !pos.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidPosition, pos)
	}
	if _, ok := s.team.Player(playerID); !ok {
		return fmt.Errorf("%w: %v", ErrUnknownPlayer, playerID)
	}
	if cur, ok := s.state.Positions.PositionOf(playerID); ok && cur != pos {
		return fmt.Errorf("%w: %v is in position %d", ErrAlreadyOnCourt,
			playerID, cur)
	}

	return s.apply(func(next *lineup.MatchState) (*lineup.MatchEvent, bool) {
		out := next.Positions.At(pos)
		if out == playerID {
			return nil, false
		}
		next.Positions, next.Bench = lineup.Substitute(next.Positions,
			next.Bench, playerID, pos)
		details := map[string]any{
			"in":       playerID,
			"position": strconv.Itoa(int(pos)),
		}
		if out != "" {
			details["out"] = out
		}
		return &lineup.MatchEvent{Type: lineup.EventSub, Details: details}, true
	})
}

// Rotate advances the lineup one position in serve order.
func (s *Session) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(func(next *lineup.MatchState) (*lineup.MatchEvent, bool) {
		next.Positions = lineup.Rotate(next.Positions)
		return &lineup.MatchEvent{
			Type:    lineup.EventRotate,
			Details: map[string]any{"server": lineup.Server(next.Positions)},
		}, true
	})
}

// IncScore adds a point for side.
func (s *Session) IncScore(side lineup.Side) error {
	return s.adjustScore(side, 1)
}

// DecScore removes a point from side. At zero it does nothing.
func (s *Session) DecScore(side lineup.Side) error {
	return s.adjustScore(side, -1)
}

func (s *Session) adjustScore(side lineup.Side, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pick func(st *lineup.MatchState) *int
	switch side {
	case lineup.SideUs:
		pick = func(st *lineup.MatchState) *int { return &st.UsScore }
	case lineup.SideThem:
		pick = func(st *lineup.MatchState) *int { return &st.OppScore }
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidSide, side)
	}

	return s.apply(func(next *lineup.MatchState) (*lineup.MatchEvent, bool) {
		score := pick(next)
		if *score+delta < 0 {
			return nil, false
		}
		*score += delta
		return &lineup.MatchEvent{
			Type: lineup.EventScore,
			Details: map[string]any{
				"side":  string(side),
				"delta": fmt.Sprintf("%+d", delta),
				"us":    strconv.Itoa(next.UsScore),
				"opp":   strconv.Itoa(next.OppScore),
			},
		}, true
	})
}

// Undo restores the state before the most recent mutation. It reports
// whether there was anything to undo.
func (s *Session) Undo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return false, ErrNoTeamSelected
	}
	prev, ok := s.undo.pop()
	if !ok {
		return false, nil
	}
	s.state = prev
	if s.store != nil {
		s.store.Save(s.state.Clone())
	}
	return true, nil
}

// Reset discards the match: fresh lineup from the roster, zero scores, empty
// undo stack, and no saved state for the team.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.team == nil {
		return ErrNoTeamSelected
	}
	s.undo.clear()
	s.state = lineup.NewMatchState(s.team, s.nowMillis())
	s.restore = false
	if s.store != nil {
		s.store.Clear(s.team.ID)
	}
	log.Printf("match.reset: %v", s.team.ID)
	return nil
}
