package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pragmas.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	for name, want := range map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"user_version": "1",
	} {
		got, err := s.pragma(name)
		if err != nil {
			t.Error(err)
			continue
		}
		if got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestOpen_MigratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		if got, _ := s.pragma("user_version"); got != "1" {
			t.Errorf("iteration %d: user_version = %q, want 1", i, got)
		}
		s.Close()
	}
}

func TestCreateMatch_Duplicate(t *testing.T) {
	s := createTestStore(t)
	createTestMatch(t, s, "m1")

	err := s.CreateMatch(context.Background(), Match{ID: "m1", Name: "again"})
	if !errors.Is(err, ErrMatchExists) {
		t.Fatalf("CreateMatch() error = %v, want ErrMatchExists", err)
	}
}

func TestGetMatch_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetMatch(context.Background(), "missing")
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("GetMatch() error = %v, want ErrMatchNotFound", err)
	}
}

func TestDeleteMatch_Cascades(t *testing.T) {
	s := createTestStore(t)
	createTestMatch(t, s, "m1")
	if err := s.AppendEvents(context.Background(), "m1", []Event{runsEvent("m1", 1, 4)}); err != nil {
		t.Fatalf("AppendEvents() failed: %v", err)
	}

	if err := s.DeleteMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("DeleteMatch() failed: %v", err)
	}

	events, err := s.ReadEvents(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after delete, want 0", len(events))
	}

	if err := s.DeleteMatch(context.Background(), "m1"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("second DeleteMatch() error = %v, want ErrMatchNotFound", err)
	}
}
