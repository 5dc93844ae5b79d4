package engine

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/roach88/scricket/internal/codec"
	"github.com/roach88/scricket/internal/match"
	"github.com/roach88/scricket/internal/store"
)

// Session is an open, persisted match. All methods are safe for concurrent
// use; changes are applied one at a time.
type Session struct {
	engine *Engine
	match  store.Match

	mu    sync.Mutex
	state *match.State
	clock *Clock
}

// ID returns the match id.
func (s *Session) ID() string {
	return s.match.ID
}

// Name returns the match name.
func (s *Session) Name() string {
	return s.match.Name
}

// State returns the live match. Callers read it; all changes go through
// the session.
func (s *Session) State() *match.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Seq returns the seq of the last stored event.
func (s *Session) Seq() int64 {
	return s.clock.Current()
}

// Submit checks ev against the rules, stores it and applies it.
// A rejected event returns an error satisfying IsRejected and changes
// nothing.
func (s *Session) Submit(ctx context.Context, ev match.Event) (match.Hint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.clock.Current() + 1
	if err := s.state.Check(ev); err != nil {
		return match.HintNone, rejected(s.match.ID, seq, err)
	}

	stored, err := encodeStored(s.match.ID, seq, []match.Event{ev})
	if err != nil {
		return match.HintNone, fmt.Errorf("submit: %w", err)
	}
	if err := s.engine.store.AppendEvents(ctx, s.match.ID, stored); err != nil {
		return match.HintNone, fmt.Errorf("submit: %w", err)
	}

	hint, err := s.state.Apply(ev)
	if err != nil {
		return match.HintNone, rejected(s.match.ID, seq, err)
	}
	s.clock.Next()

	s.engine.logger.Debug("event submitted",
		"match", s.match.ID,
		"seq", seq,
		"kind", ev.Kind().Name(),
		"hint", hint.String(),
	)
	return hint, nil
}

// SubmitAll submits events in order, stopping at the first failure. The
// returned hint is the last event's.
func (s *Session) SubmitAll(ctx context.Context, events []match.Event) (match.Hint, error) {
	hint := match.HintNone
	for _, ev := range events {
		var err error
		hint, err = s.Submit(ctx, ev)
		if err != nil {
			return hint, err
		}
	}
	return hint, nil
}

// Undo removes the last submitted event.
func (s *Session) Undo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state.Undo()
	if err != nil {
		return rejected(s.match.ID, s.clock.Current(), err)
	}
	if err := s.replace(ctx, st); err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	s.engine.logger.Info("event undone", "match", s.match.ID, "events", st.Len())
	return nil
}

// Delete removes the submitted event at index (0-based, in log order).
// It is refused if the rest of the log no longer applies.
func (s *Session) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state.Without(index)
	if err != nil {
		return rejected(s.match.ID, int64(index)+1, err)
	}
	if err := s.replace(ctx, st); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	s.engine.logger.Info("event deleted", "match", s.match.ID, "index", index)
	return nil
}

// replace rewrites the stored log to st's events and adopts st.
// Callers hold s.mu, except Import which owns the session exclusively.
func (s *Session) replace(ctx context.Context, st *match.State) error {
	stored, err := encodeStored(s.match.ID, 1, st.Events())
	if err != nil {
		return err
	}
	if err := s.engine.store.ReplaceEvents(ctx, s.match.ID, stored); err != nil {
		return err
	}
	s.state = st
	s.clock.Reset(int64(len(stored)))
	return nil
}

// Events returns the submitted events.
func (s *Session) Events() []match.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Events()
}

// Verify rebuilds the match from the store and checks that it matches the
// live state exactly. It returns the log digest.
func (s *Session) Verify(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.engine.store.ReadLog(ctx, s.match.ID)
	if err != nil {
		return "", fmt.Errorf("verify: %w", err)
	}
	events, err := decodeStored(log.Events)
	if err != nil {
		return "", fmt.Errorf("verify: %w", err)
	}
	rebuilt, err := match.Replay(events)
	if err != nil {
		return "", fmt.Errorf("verify: %w", corrupt(s.match.ID, 0, err))
	}

	live, err := codec.Digest(s.state.Events())
	if err != nil {
		return "", fmt.Errorf("verify: %w", err)
	}
	stored, err := codec.Digest(events)
	if err != nil {
		return "", fmt.Errorf("verify: %w", err)
	}

	if live != stored || !reflect.DeepEqual(rebuilt, s.state) {
		s.engine.logger.Warn("replay diverged", "match", s.match.ID, "live", live, "stored", stored)
		return "", &SessionError{
			Code:    ErrCodeReplayDiverged,
			Message: fmt.Sprintf("stored digest %s, live digest %s", stored, live),
			MatchID: s.match.ID,
		}
	}

	s.engine.logger.Debug("replay verified", "match", s.match.ID, "digest", live)
	return live, nil
}
