package application

import (
	"context"
	"io"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
	"github.com/oksasatya/go-community-events/pkg/notify"
)

// Notifier accepts a message for asynchronous delivery and never blocks.
type Notifier interface {
	Notify(m notify.Message) bool
}

// EventIndex is the full-text search projection of events. Writes are best-effort.
type EventIndex interface {
	Index(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, size int) ([]string, error)
}

// ObjectStore uploads a blob and returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
