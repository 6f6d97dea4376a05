package services

import (
	"chat-fs/contract"
	"chat-fs/domain"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
)

// ChainBuilder sends a bundle plan as a chain of messages.
type ChainBuilder struct {
	log       *slog.Logger
	transport contract.ITransport
	timeout   time.Duration
}

func NewChainBuilder(log *slog.Logger, transport contract.ITransport, timeout time.Duration) *ChainBuilder {
	return &ChainBuilder{log: log, transport: transport, timeout: timeout}
}

// Build sends the bundles from the last one to the first one, so that every
// message can name its successor, and returns the identifier of the head.
// An empty plan still produces one message without attachments.
// On failure the messages already sent are left in the channel.
func (b *ChainBuilder) Build(ctx context.Context, filename string, bundles []domain.Bundle) (domain.MessageID, error) {
	if err := domain.ValidateFilename(filename); err != nil {
		return 0, err
	}
	if len(bundles) == 0 {
		bundles = []domain.Bundle{{Index: 0}}
	}

	var (
		next *domain.MessageID
		sent = make([]domain.MessageID, 0, len(bundles))
	)
	for i := len(bundles) - 1; i >= 0; i-- {
		bundle := bundles[i]
		link := domain.ChainLink{Filename: filename, Next: next}
		id, err := b.send(ctx, bundle, link)
		if err != nil {
			if len(sent) > 0 {
				b.log.Warn("Upload aborted, sent messages are orphaned",
					"filename", filename, "orphans", lo.Map(sent, func(id domain.MessageID, _ int) string { return id.String() }))
			}
			return 0, fmt.Errorf("unable to send bundle %d of %d: %w", bundle.Index+1, len(bundles), err)
		}
		b.log.Debug("Bundle sent", "bundle", bundle.Index, "chunks", len(bundle.Chunks),
			"bytes", bundle.Size(), "message_id", id, "tail", link.IsTail())
		sent = append(sent, id)
		next = &id
	}
	return *next, nil
}

func (b *ChainBuilder) send(ctx context.Context, bundle domain.Bundle, link domain.ChainLink) (domain.MessageID, error) {
	uploads, closeAll, err := openUploads(bundle)
	if err != nil {
		return 0, err
	}
	defer closeAll()

	ctx, cancel := withTimeout(ctx, b.timeout)
	defer cancel()
	return b.transport.SendBundle(ctx, uploads, link.Encode())
}

// openUploads opens the staged files of a bundle in chunk order.
func openUploads(bundle domain.Bundle) ([]domain.Upload, func(), error) {
	files := make([]*os.File, 0, len(bundle.Chunks))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	uploads := make([]domain.Upload, 0, len(bundle.Chunks))
	for _, chunk := range bundle.Chunks {
		f, err := os.Open(chunk.Path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("unable to open chunk %d: %w", chunk.Index, err)
		}
		files = append(files, f)
		uploads = append(uploads, domain.Upload{
			Filename: filepath.Base(chunk.Path),
			MimeType: chunk.MimeType,
			Size:     chunk.Size,
			Data:     f,
		})
	}
	return uploads, closeAll, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
