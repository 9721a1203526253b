package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

// SyncContentTask re-imports the content directory so edits and newly added
// files land in storage without a restart.
type SyncContentTask struct {
	Task
	importer ImporterInterface
}

func NewSyncContentTask(importer ImporterInterface) *SyncContentTask {
	return &SyncContentTask{
		Task:     NewTask(TaskTypeSyncContent),
		importer: importer,
	}
}

func (t *SyncContentTask) Execute(ctx context.Context) error {
	count, err := t.importer.Run()
	if err != nil {
		return fmt.Errorf("content sync failed: %w", err)
	}

	slog.Debug("Content synchronized", "imported", count, "duration", t.GetDuration().String())

	return nil
}
