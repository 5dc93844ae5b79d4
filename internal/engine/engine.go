package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/scricket/internal/codec"
	"github.com/roach88/scricket/internal/ir"
	"github.com/roach88/scricket/internal/match"
	"github.com/roach88/scricket/internal/store"
)

// IDGenerator generates unique match ids.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// Engine opens and creates persisted matches.
type Engine struct {
	store  *store.Store
	ids    IDGenerator
	logger *slog.Logger
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithIDGenerator sets the match id generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// New creates an Engine over the given store.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewMatch creates an empty match and opens a session on it.
func (e *Engine) NewMatch(ctx context.Context, name string) (*Session, error) {
	m := store.Match{
		ID:              e.ids.Generate(),
		Name:            name,
		EngineVersion:   ir.EngineVersion,
		EncodingVersion: ir.EncodingVersion,
	}
	if err := e.store.CreateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	e.logger.Info("match created", "match", m.ID, "name", name)
	return e.session(m, match.New(), 0), nil
}

// Import creates a match from an existing event log. The log is replayed
// before anything is written, so an illegal log creates nothing.
func (e *Engine) Import(ctx context.Context, name string, events []match.Event) (*Session, error) {
	st, err := match.Replay(events)
	if err != nil {
		return nil, fmt.Errorf("import: %w", rejected("", 0, err))
	}

	sess, err := e.NewMatch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	if err := sess.replace(ctx, st); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	e.logger.Info("match imported", "match", sess.ID(), "events", len(events))
	return sess, nil
}

// Open loads a match by replaying its stored events.
func (e *Engine) Open(ctx context.Context, matchID string) (*Session, error) {
	log, err := e.store.ReadLog(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	events, err := decodeStored(log.Events)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	st, err := match.Replay(events)
	if err != nil {
		return nil, fmt.Errorf("open: %w", corrupt(matchID, 0, err))
	}

	e.logger.Debug("match loaded", "match", matchID, "events", len(events), "last_seq", log.LastSeq)
	return e.session(log.Match, st, log.LastSeq), nil
}

// List returns every stored match.
func (e *Engine) List(ctx context.Context) ([]store.Match, error) {
	return e.store.ListMatches(ctx)
}

// KindCounts returns how many stored events of each kind a match holds.
func (e *Engine) KindCounts(ctx context.Context, matchID string) (map[string]int, error) {
	return e.store.CountByKind(ctx, matchID)
}

// Remove deletes a match and its log.
func (e *Engine) Remove(ctx context.Context, matchID string) error {
	if err := e.store.DeleteMatch(ctx, matchID); err != nil {
		return err
	}
	e.logger.Info("match removed", "match", matchID)
	return nil
}

func (e *Engine) session(m store.Match, st *match.State, lastSeq int64) *Session {
	return &Session{
		engine: e,
		match:  m,
		state:  st,
		clock:  NewClockAt(lastSeq),
	}
}

// decodeStored turns stored payloads back into events.
func decodeStored(stored []store.Event) ([]match.Event, error) {
	events := make([]match.Event, len(stored))
	for i, se := range stored {
		ev, err := codec.EventFromObject(se.Payload)
		if err != nil {
			return nil, corrupt(se.MatchID, se.Seq, err)
		}
		if ev.Kind().Name() != se.Kind {
			return nil, corrupt(se.MatchID, se.Seq, fmt.Errorf("kind column %q, payload %q", se.Kind, ev.Kind().Name()))
		}
		events[i] = ev
	}
	return events, nil
}

// encodeStored stamps events with seq numbers from first onwards.
func encodeStored(matchID string, first int64, events []match.Event) ([]store.Event, error) {
	out := make([]store.Event, len(events))
	for i, ev := range events {
		seq := first + int64(i)
		payload, err := codec.Payload(ev)
		if err != nil {
			return nil, fmt.Errorf("encode seq %d: %w", seq, err)
		}
		id, err := ir.EventID(matchID, seq, payload)
		if err != nil {
			return nil, fmt.Errorf("encode seq %d: %w", seq, err)
		}
		out[i] = store.Event{
			ID:      id,
			MatchID: matchID,
			Seq:     seq,
			Kind:    ev.Kind().Name(),
			Payload: payload,
		}
	}
	return out, nil
}
