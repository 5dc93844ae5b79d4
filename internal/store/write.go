package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateMatch inserts a new match. Returns ErrMatchExists if the id is
// already taken.
func (s *Store) CreateMatch(ctx context.Context, m Match) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (id, name, engine_version, encoding_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, m.ID, m.Name, m.EngineVersion, m.EncodingVersion)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("create match %s: %w", m.ID, ErrMatchExists)
	}
	return nil
}

// AppendEvents writes events at the end of a match log in one transaction.
// Uses ON CONFLICT(id) DO NOTHING so rewriting an identical event at the
// same seq is a no-op. A different event at a taken seq fails the whole
// batch.
func (s *Store) AppendEvents(ctx context.Context, matchID string, events []Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append events: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := requireMatch(ctx, tx, matchID); err != nil {
		return fmt.Errorf("append events: %w", err)
	}
	if err := insertEvents(ctx, tx, matchID, events); err != nil {
		return fmt.Errorf("append events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append events: commit: %w", err)
	}
	return nil
}

// ReplaceEvents swaps a match's whole log for events. Undo, delete and
// import go through here.
func (s *Store) ReplaceEvents(ctx context.Context, matchID string, events []Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace events: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := requireMatch(ctx, tx, matchID); err != nil {
		return fmt.Errorf("replace events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE match_id = ?`, matchID); err != nil {
		return fmt.Errorf("replace events: delete: %w", err)
	}
	if err := insertEvents(ctx, tx, matchID, events); err != nil {
		return fmt.Errorf("replace events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace events: commit: %w", err)
	}
	return nil
}

// DeleteMatch removes a match and, by cascade, its events.
func (s *Store) DeleteMatch(ctx context.Context, matchID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, matchID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete match %s: %w", matchID, ErrMatchNotFound)
	}
	return nil
}

func requireMatch(ctx context.Context, tx *sql.Tx, matchID string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM matches WHERE id = ?`, matchID).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("match %s: %w", matchID, ErrMatchNotFound)
	}
	return err
}

func insertEvents(ctx context.Context, tx *sql.Tx, matchID string, events []Event) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (id, match_id, seq, kind, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if ev.MatchID != "" && ev.MatchID != matchID {
			return fmt.Errorf("event %s belongs to match %s, not %s", ev.ID, ev.MatchID, matchID)
		}
		payload, err := marshalPayload(ev.Payload)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, ev.ID, matchID, ev.Seq, ev.Kind, payload); err != nil {
			return fmt.Errorf("insert event seq %d: %w", ev.Seq, err)
		}
	}
	return nil
}
