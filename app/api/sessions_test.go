package api

import (
	"os"
	"testing"
	"time"

	"github.com/pressfeed/pressfeed/app/cfg"
	"github.com/pressfeed/pressfeed/app/feed"
)

func setupTestConfig(t *testing.T) {
	t.Helper()

	oldArgs := os.Args
	os.Args = []string{"pressfeed"}
	t.Cleanup(func() { os.Args = oldArgs })

	if _, err := cfg.Load(); err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
}

func TestSessionsGetReturnsSameControllerPerID(t *testing.T) {
	setupTestConfig(t)
	sessions := NewSessions(feed.NewBuilder(nil, nil))

	first := sessions.Get("session-a")
	second := sessions.Get("session-a")
	other := sessions.Get("session-b")

	if first != second {
		t.Error("Expected the same controller for repeated lookups of one session")
	}
	if first == other {
		t.Error("Expected distinct controllers for distinct sessions")
	}
	if sessions.Count() != 2 {
		t.Errorf("Expected 2 sessions, got %d", sessions.Count())
	}
}

func TestSessionsPruneIdle(t *testing.T) {
	setupTestConfig(t)
	sessions := NewSessions(feed.NewBuilder(nil, nil))

	sessions.Get("stale")
	sessions.entries["stale"].lastSeen = time.Now().Add(-2 * time.Hour)
	sessions.Get("fresh")

	pruned := sessions.PruneIdle(time.Hour)

	if pruned != 1 {
		t.Errorf("Expected 1 pruned session, got %d", pruned)
	}
	if sessions.Count() != 1 {
		t.Errorf("Expected 1 remaining session, got %d", sessions.Count())
	}
	if _, ok := sessions.entries["fresh"]; !ok {
		t.Error("Expected fresh session to survive pruning")
	}
}

func TestSessionsPruneIdleTouchRefreshes(t *testing.T) {
	setupTestConfig(t)
	sessions := NewSessions(feed.NewBuilder(nil, nil))

	sessions.Get("reader")
	sessions.entries["reader"].lastSeen = time.Now().Add(-2 * time.Hour)

	// A lookup counts as activity
	sessions.Get("reader")

	if pruned := sessions.PruneIdle(time.Hour); pruned != 0 {
		t.Errorf("Expected no pruned sessions after touch, got %d", pruned)
	}
}
