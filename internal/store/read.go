package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetMatch returns the match with the given id, or ErrMatchNotFound.
func (s *Store) GetMatch(ctx context.Context, id string) (Match, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT m.id, m.name, m.engine_version, m.encoding_version, COUNT(e.id)
		FROM matches m
		LEFT JOIN events e ON e.match_id = m.id
		WHERE m.id = ?
		GROUP BY m.id
	`, id)

	var m Match
	err := row.Scan(&m.ID, &m.Name, &m.EngineVersion, &m.EncodingVersion, &m.Events)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, fmt.Errorf("get match %s: %w", id, ErrMatchNotFound)
	}
	if err != nil {
		return Match{}, fmt.Errorf("get match: %w", err)
	}
	return m, nil
}

// ListMatches returns every match ordered by name, then id.
//
// Returns an empty slice (not nil) if the store holds no matches.
func (s *Store) ListMatches(ctx context.Context) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.engine_version, m.encoding_version, COUNT(e.id)
		FROM matches m
		LEFT JOIN events e ON e.match_id = m.id
		GROUP BY m.id
		ORDER BY m.name ASC, m.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.Name, &m.EngineVersion, &m.EncodingVersion, &m.Events); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

// ReadEvents returns a match's events ordered by seq.
//
// Returns an empty slice (not nil) if the match has no events.
func (s *Store) ReadEvents(ctx context.Context, matchID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, match_id, seq, kind, payload
		FROM events
		WHERE match_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// LastSeq returns the highest seq stored for a match, or 0.
func (s *Store) LastSeq(ctx context.Context, matchID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM events WHERE match_id = ?
	`, matchID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}

// CountByKind returns how many events of each kind a match holds.
func (s *Store) CountByKind(ctx context.Context, matchID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*)
		FROM events
		WHERE match_id = ?
		GROUP BY kind
		ORDER BY kind ASC
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var ev Event
	var payload string
	if err := rows.Scan(&ev.ID, &ev.MatchID, &ev.Seq, &ev.Kind, &payload); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}
	obj, err := unmarshalPayload(payload)
	if err != nil {
		return Event{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	ev.Payload = obj
	return ev, nil
}
