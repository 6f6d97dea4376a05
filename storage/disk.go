package storage

import (
	"chat-fs/errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/disk"
)

// MaxNameProbes bounds the number of names FreePath tries.
const MaxNameProbes = 1000

// FreePath returns path itself if nothing exists there, otherwise the first
// name obtained by appending '_' to the last element that is free.
// It does not reserve the path: the caller creates it.
func FreePath(path string) (string, error) {
	return freePath(path, MaxNameProbes)
}

func freePath(path string, probes int) (string, error) {
	dir, name := filepath.Split(filepath.Clean(path))
	for i := 0; i < probes; i++ {
		candidate := filepath.Join(dir, name)
		_, err := os.Lstat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("unable to probe %s: %w", candidate, err)
		}
		name += "_"
	}
	return "", fmt.Errorf("%w for %s after %d attempts", errors.ErrNoFreePath, path, probes)
}

// EnsureCapacity fails when the volume holding dir has less than size bytes free.
func EnsureCapacity(dir string, size int64) error {
	usage, err := disk.Usage(dir)
	if err != nil {
		return fmt.Errorf("unable to read disk usage of %s: %w", dir, err)
	}
	if size > 0 && uint64(size) > usage.Free {
		return fmt.Errorf("%w: need %d bytes, %d available", errors.ErrInsufficientSpace, size, usage.Free)
	}
	return nil
}
