package domain

import (
	"context"
)

// KVStore is the key-value persistence collaborator. Collections are stored
// as whole JSON blobs under a single key; there is no partial update.
type KVStore interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	MultiRemove(ctx context.Context, keys []string) error
	Close() error
}

// Scheduler is the notification scheduling collaborator. ScheduleAll cancels
// every scheduled notification and rebuilds one daily trigger per active
// reminder; there is no incremental form, so callers must never invoke it
// concurrently with itself.
type Scheduler interface {
	ScheduleAll(ctx context.Context, active []Reminder) error
	CancelAll()
}

// FileSink writes export output somewhere the user can reach. The destination
// hint is an opaque string passed through from user selection.
type FileSink interface {
	Write(ctx context.Context, filename, content, mimeType, destination string) (string, error)
}

// Toaster is the fire-and-forget user notification surface.
type Toaster interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}
