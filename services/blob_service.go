package services

import (
	"chat-fs/contract"
	"chat-fs/domain"
	"chat-fs/errors"
	"chat-fs/storage"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

type IBlobService interface {
	Upload(ctx context.Context, path string) (domain.MessageID, error)
	Download(ctx context.Context, head domain.MessageID) (string, error)
}

// BlobServiceConfig tunes a BlobService. Zero sizes fall back to the
// transport limits.
type BlobServiceConfig struct {
	OutputDir      string
	Timeout        time.Duration
	MaxChainLength int
	ChunkSize      int
	BundleSize     int
}

type UploadRequest struct {
	Path string `validate:"required,max=4096"`
}

// BlobService stores files as chains of messages and reads them back.
type BlobService struct {
	log        *slog.Logger
	validator  *validator.Validate
	workDir    *storage.WorkDir
	builder    *ChainBuilder
	walker     *ChainWalker
	outputDir  string
	chunkSize  int
	bundleSize int
}

func NewBlobService(log *slog.Logger, transport contract.ITransport, workDir *storage.WorkDir, config BlobServiceConfig) *BlobService {
	chunkSize, bundleSize := config.ChunkSize, config.BundleSize
	if chunkSize <= 0 {
		chunkSize = domain.MaxChunkSize
	}
	if bundleSize <= 0 {
		bundleSize = domain.MaxBundleSize
	}
	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	return &BlobService{
		log:        log,
		validator:  validator.New(),
		workDir:    workDir,
		builder:    NewChainBuilder(log, transport, config.Timeout),
		walker:     NewChainWalker(log, transport, config.Timeout, config.MaxChainLength),
		outputDir:  outputDir,
		chunkSize:  chunkSize,
		bundleSize: bundleSize,
	}
}

// Upload stages the file as chunks, sends them as a chain and returns the
// identifier of the head message.
func (s *BlobService) Upload(ctx context.Context, path string) (domain.MessageID, error) {
	if err := s.validator.Struct(UploadRequest{Path: path}); err != nil {
		return 0, fmt.Errorf("invalid upload request: %w", err)
	}
	filename := filepath.Base(path)
	if err := domain.ValidateFilename(filename); err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("unable to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", errors.ErrNotRegularFile, path)
	}
	if err := storage.EnsureCapacity(s.workDir.Path, info.Size()); err != nil {
		return 0, err
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer file.Close()

	chunks, err := s.stage(file)
	if err != nil {
		return 0, err
	}
	bundles := PlanBundles(chunks, s.bundleSize)
	s.log.Info("Upload planned", "filename", filename, "size", info.Size(),
		"chunks", len(chunks), "bundles", len(bundles))

	head, err := s.builder.Build(ctx, filename, bundles)
	if err != nil {
		return 0, err
	}
	s.log.Info("Upload completed", "filename", filename, "head", head)
	return head, nil
}

// stage splits r into chunks and writes each of them to the working directory.
func (s *BlobService) stage(r io.Reader) ([]domain.Chunk, error) {
	chunker := NewChunker(r, s.chunkSize)
	var chunks []domain.Chunk
	for {
		data, err := chunker.Next()
		if err == io.EOF {
			return chunks, nil
		}
		if err != nil {
			return nil, err
		}
		chunk, err := s.workDir.StageChunk(len(chunks), data)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
}

// Download rebuilds the file whose chain starts at head inside the output
// directory and returns its path. The name recorded in the chain is used,
// suffixed when a file with that name already exists.
func (s *BlobService) Download(ctx context.Context, head domain.MessageID) (string, error) {
	var (
		file *os.File
		path string
	)
	defer func() {
		if file != nil {
			_ = file.Close()
		}
	}()

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create output directory %s: %w", s.outputDir, err)
	}

	open := func(filename string) (io.Writer, error) {
		name := filepath.Base(filename)
		switch name {
		case ".", "..", string(filepath.Separator):
			return nil, fmt.Errorf("%w: %q", errors.ErrInvalidFilename, filename)
		}
		free, err := storage.FreePath(filepath.Join(s.outputDir, name))
		if err != nil {
			return nil, err
		}
		// The output never leaves the output directory
		if filepath.Dir(free) != filepath.Clean(s.outputDir) {
			return nil, fmt.Errorf("%w: %q resolves outside %s", errors.ErrInvalidFilename, filename, s.outputDir)
		}
		f, err := os.OpenFile(free, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to create %s: %w", free, err)
		}
		file, path = f, free
		return f, nil
	}

	result, err := s.walker.Walk(ctx, head, open)
	if err != nil {
		if path != "" {
			s.log.Warn("Download aborted, partial output left on disk", "path", path, "bytes", result.Bytes)
		}
		return "", err
	}
	if err := file.Close(); err != nil {
		file = nil
		return "", fmt.Errorf("unable to close %s: %w", path, err)
	}
	file = nil
	s.log.Info("Download completed", "path", path, "links", result.Links, "bytes", result.Bytes)
	return path, nil
}
