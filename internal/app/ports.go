package app

import (
	"io"
	"io/fs"
	"time"

	"ftool/internal/domain"
)

// FileSystem is the engine's view of the OS filesystem. The production
// implementation lives in internal/infra/fs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(path string) error
	RemoveAll(path string) error
	Open(path string) (io.ReadCloser, error)
	Create(path string, perm fs.FileMode) (io.WriteCloser, error)
	Chtimes(path string, atime, mtime time.Time) error
	// SameDevice reports whether two paths reside on one filesystem device.
	// Missing paths are resolved through their nearest existing parent.
	SameDevice(a, b string) (bool, error)
	// AvailableSpace returns the free bytes on the device holding path.
	AvailableSpace(path string) (uint64, error)
}

// Prompter answers the two interactive questions the engine can raise.
// Implementations block until a response is available; tests inject
// scripted responses.
type Prompter interface {
	// AskOverwrite returns the user's single-token answer for an existing
	// target: "", "y", "n", "a", "s", or "q".
	AskOverwrite(path string) (string, error)
	// ConfirmMkdir asks whether a missing destination directory should be
	// created. Empty input defaults to yes.
	ConfirmMkdir(path string) (bool, error)
}

// Trash is the recoverable delete store consulted by the soft-delete
// strategy. Send must never fall back to permanent deletion.
type Trash interface {
	Send(path string) error
}

// ProgressFunc receives progress events. Nil disables reporting.
type ProgressFunc func(domain.ProgressEvent)

// EntryFunc is called before an entry starts, ResultFunc after it finished.
// Both are optional hooks for human-readable status output.
type (
	EntryFunc  func(index, total int, plan domain.TransferPlan)
	ResultFunc func(index, total int, result domain.OperationResult)
)
