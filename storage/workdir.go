package storage

import (
	"chat-fs/domain"
	"chat-fs/domain/mimetypes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// WorkDir is the scratch directory owned by one process.
// Chunks are staged in it as files named after their index.
type WorkDir struct {
	Path string
	log  *slog.Logger
}

// NewWorkDir creates a fresh directory at base, or at the first free
// variant of base when something already exists there.
func NewWorkDir(base string, log *slog.Logger) (*WorkDir, error) {
	path, err := FreePath(base)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("unable to create parent of working directory %s: %w", path, err)
	}
	if err := os.Mkdir(path, 0o700); err != nil {
		return nil, fmt.Errorf("unable to create working directory %s: %w", path, err)
	}
	log.Debug("Working directory created", "path", path)
	return &WorkDir{Path: path, log: log}, nil
}

// StageChunk writes the chunk bytes to disk and describes the result.
func (w *WorkDir) StageChunk(index int, data []byte) (domain.Chunk, error) {
	path := filepath.Join(w.Path, strconv.Itoa(index))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return domain.Chunk{}, fmt.Errorf("unable to stage chunk %d: %w", index, err)
	}
	return domain.Chunk{
		Index:    index,
		Path:     path,
		Size:     int64(len(data)),
		MimeType: string(mimetypes.Detect(data)),
	}, nil
}

// Remove deletes the directory and everything staged in it.
func (w *WorkDir) Remove() error {
	if err := os.RemoveAll(w.Path); err != nil {
		return fmt.Errorf("unable to remove working directory %s: %w", w.Path, err)
	}
	w.log.Debug("Working directory removed", "path", w.Path)
	return nil
}
