package store

import (
	"context"
	"fmt"
)

// MatchLog is everything needed to rebuild a match.
type MatchLog struct {
	Match   Match
	Events  []Event
	LastSeq int64
}

// ReadLog reads a match and its events in one call. Gaps in seq are
// reported as errors: a log with a hole cannot be replayed faithfully.
func (s *Store) ReadLog(ctx context.Context, matchID string) (MatchLog, error) {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return MatchLog{}, fmt.Errorf("read log: %w", err)
	}

	events, err := s.ReadEvents(ctx, matchID)
	if err != nil {
		return MatchLog{}, fmt.Errorf("read log: %w", err)
	}

	log := MatchLog{Match: m, Events: events}
	for i, ev := range events {
		if want := int64(i + 1); ev.Seq != want {
			return MatchLog{}, fmt.Errorf("read log %s: seq %d where %d expected", matchID, ev.Seq, want)
		}
		log.LastSeq = ev.Seq
	}
	return log, nil
}
