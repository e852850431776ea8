package cli

import (
	"fmt"
	"os"
	"time"
)

// staleLockAge is how old a lock file must be before it is ignored.
const staleLockAge = 10 * time.Minute

// lockTopology creates path.lock so two applies of the same topology do not
// interleave. The returned function removes the lock.
func lockTopology(path string) (func() error, error) {
	lockPath := path + ".lock"

	if info, err := os.Stat(lockPath); err == nil {
		if time.Since(info.ModTime()) <= staleLockAge {
			return nil, fmt.Errorf("topology is locked by another apply (lock file: %s). "+
				"If this is an error, remove the lock file manually", lockPath)
		}
		os.Remove(lockPath)
	}

	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	_, err = fmt.Fprintf(f, "pid=%d\ntime=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(lockPath)
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}

	return func() error {
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove lock file: %w", err)
		}
		return nil
	}, nil
}
