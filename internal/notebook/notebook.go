// Package notebook keeps per-session progress notes. A Session is created
// explicitly and handed to every call; entries live exactly as long as it.
package notebook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
)

type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Store interface {
	Create(ctx context.Context) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	// Append stamps content with at, or the current time when at is zero.
	Append(ctx context.Context, sess Session, content string, at time.Time) (model.NotebookEntry, error)
	// List returns up to limit entries, most recent first. limit <= 0 means all.
	List(ctx context.Context, sess Session, limit int) ([]model.NotebookEntry, error)
}

func newEntry(content string, at time.Time) (model.NotebookEntry, error) {
	if strings.TrimSpace(content) == "" {
		return model.NotebookEntry{}, fmt.Errorf("%w: notebook entry content is required", apperrors.ErrInvalidInput)
	}
	return model.NotebookEntry{Timestamp: model.FormatTimestamp(at), Content: content}, nil
}

func sessionNotFound(id string) error {
	return fmt.Errorf("notebook session %q: %w", id, apperrors.ErrNotFound)
}

// newestFirst copies the tail of entries (stored oldest first) in reverse.
func newestFirst(entries []model.NotebookEntry, limit int) []model.NotebookEntry {
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.NotebookEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}
