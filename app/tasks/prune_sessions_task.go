package tasks

import (
	"context"
	"log/slog"
	"time"
)

// PruneSessionsTask evicts feed sessions that have been idle past their TTL,
// so the per-session controller registry does not grow without bound.
type PruneSessionsTask struct {
	Task
	sessions SessionPruner
	maxIdle  time.Duration
}

func NewPruneSessionsTask(sessions SessionPruner, maxIdle time.Duration) *PruneSessionsTask {
	return &PruneSessionsTask{
		Task:     NewTask(TaskTypePruneSessions),
		sessions: sessions,
		maxIdle:  maxIdle,
	}
}

func (t *PruneSessionsTask) Execute(ctx context.Context) error {
	pruned := t.sessions.PruneIdle(t.maxIdle)
	if pruned > 0 {
		slog.Debug("Idle feed sessions pruned", "count", pruned, "duration", t.GetDuration().String())
	}
	return nil
}
