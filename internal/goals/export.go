package goals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayush/goalsetter/internal/apperr"
	"github.com/ayush/goalsetter/internal/models"
	"github.com/ayush/goalsetter/internal/store"
)

const exportContentType = "application/json"

// FileStore defines the interface for export object storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// Snapshot is the document written by an export.
type Snapshot struct {
	UserID     string        `json:"user"`
	ExportedAt time.Time     `json:"exported_at"`
	Goals      []models.Goal `json:"goals"`
}

// Exporter writes JSON snapshots of a user's goals to object storage.
// Object keys derive from the caller id only.
type Exporter struct {
	goals Store
	files FileStore
	now   func() time.Time
}

func NewExporter(goals Store, files FileStore) *Exporter {
	return &Exporter{goals: goals, files: files, now: time.Now}
}

func exportKey(userID string) string {
	return userID + "/goals-export.json"
}

// Export snapshots the caller's goals and returns the object key.
func (e *Exporter) Export(ctx context.Context, caller models.Identity) (string, error) {
	goals, err := e.goals.FindByOwner(ctx, caller.ID)
	if err != nil {
		return "", fmt.Errorf("export goals: %w", err)
	}

	data, err := json.Marshal(Snapshot{
		UserID:     caller.ID,
		ExportedAt: e.now().UTC(),
		Goals:      goals,
	})
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}

	key := exportKey(caller.ID)
	if err := e.files.Upload(ctx, key, data, exportContentType); err != nil {
		return "", err
	}
	return key, nil
}

// Latest returns the caller's most recent export.
func (e *Exporter) Latest(ctx context.Context, caller models.Identity) ([]byte, string, error) {
	data, ct, err := e.files.Download(ctx, exportKey(caller.ID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperr.NotFound("Export not found").Wrap(err)
		}
		return nil, "", err
	}
	if ct == "" {
		ct = exportContentType
	}
	return data, ct, nil
}
