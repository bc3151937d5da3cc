package fileutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
)

// EnsureDir creates the directory (and any parents) when missing.
func EnsureDir(path string) error {
	if path == "" {
		return errors.New("fileutil: path is empty")
	}
	return os.MkdirAll(path, 0o755)
}

// CheckWritableDir verifies that path exists, is a directory, and grants
// read/write/traverse permission to the current process.
func CheckWritableDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("fileutil: stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("fileutil: %s is not a directory", path)
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("fileutil: insufficient permissions on %s: %w", path, err)
	}
	return nil
}

// Lock acquires an advisory lock guarding writes to the target path and
// returns a release function. The lock lives in a sibling <path>.lock file;
// a held lock means another process is writing the same output.
func Lock(path string) (func(), error) {
	if path == "" {
		return nil, errors.New("fileutil: path is empty")
	}
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("fileutil: acquire lock for %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("fileutil: %s is locked by another process", path)
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}, nil
}
