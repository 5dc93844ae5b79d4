package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/scricket/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestMatch(t *testing.T, s *Store, id string) {
	t.Helper()
	err := s.CreateMatch(context.Background(), Match{ID: id, Name: "Lions v Tigers", EngineVersion: "0.1.0", EncodingVersion: "1"})
	if err != nil {
		t.Fatalf("CreateMatch() failed: %v", err)
	}
}

// runsEvent builds a stored runs event with a deterministic id.
func runsEvent(matchID string, seq int64, n int64) Event {
	payload := ir.IRObject{"type": ir.IRString("runs"), "runs": ir.IRInt(n)}
	return Event{
		ID:      fmt.Sprintf("%s-%d-%d", matchID, seq, n),
		MatchID: matchID,
		Seq:     seq,
		Kind:    "runs",
		Payload: payload,
	}
}
