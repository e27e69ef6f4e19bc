// Package runlock keeps two enrichment runs from working on the same machine
// at once.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"dvdenrich/internal/services"
)

// ErrHeld is returned when another process owns the lock.
var ErrHeld = errors.New("another run holds the lock")

// DefaultPath returns the lock file used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "filldirectors.lock")
}

// Lock is an acquired run lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock at path without blocking. It fails with ErrHeld,
// classified as a usage error, when another run is active.
func Acquire(path string) (*Lock, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrUsage, "runlock", "acquire", path, ErrHeld)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks the file. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
