package ports

import (
	"context"
	"iter"
)

// WatchOp identifies the kind of file system change.
type WatchOp int

const (
	OpWrite WatchOp = iota
	OpCreate
	OpRemove
	OpRename
)

// WatchEvent is one observed file system change.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// SourceWatcher observes the project's source files.
type SourceWatcher interface {
	// Start begins watching the given paths. Directories are watched
	// recursively.
	Start(ctx context.Context, paths []string) error

	// Events returns the stream of observed changes. The sequence ends
	// when the watcher is stopped or the context is cancelled.
	Events() iter.Seq[WatchEvent]

	// Stop releases all watch handles.
	Stop() error
}

// Rebuilder re-runs the description emission step in response to a
// source change.
type Rebuilder interface {
	// Rebuild performs one rebuild and blocks until it completes.
	Rebuild(ctx context.Context) error
}
