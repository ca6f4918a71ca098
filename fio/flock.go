package fio

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const flockName = "migration.lock"

// DirLock guards a store directory for the length of a migration pass.
// The lock file only exists while the lock is held.
type DirLock struct {
	*flock.Flock
}

func NewFlock(dirPath string) *DirLock {
	return &DirLock{Flock: flock.New(filepath.Join(dirPath, flockName))}
}

// Unlock removes the lock file while still holding it, then releases it
func (l *DirLock) Unlock() error {
	if l.Locked() {
		if err := os.Remove(l.Path()); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return l.Flock.Unlock()
}
