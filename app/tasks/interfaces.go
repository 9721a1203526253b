package tasks

import (
	"context"
	"time"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetRetryCount() int
	GetMaxRetries() int
	IncrementRetryCount()
	CanRetry() bool
	Start()
	GetDuration() time.Duration
}

// TaskSchedulerInterface defines the interface for background task scheduling.
// Used by the main application to manage periodic maintenance work.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// ImporterInterface is implemented by the content importer
type ImporterInterface interface {
	Run() (int, error)
}

// SessionPruner evicts feed sessions idle for longer than maxIdle and
// returns how many were removed.
type SessionPruner interface {
	PruneIdle(maxIdle time.Duration) int
}
