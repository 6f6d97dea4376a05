package services

import (
	"chat-fs/contract"
	"chat-fs/domain"
	"chat-fs/errors"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// OpenOutput creates the destination of a download once the filename
// recorded at the head of the chain is known.
type OpenOutput func(filename string) (io.Writer, error)

// WalkResult summarizes a completed walk.
type WalkResult struct {
	Filename string
	Links    int
	Bytes    int64
}

// ChainWalker rebuilds a file by following a chain of messages from its head.
type ChainWalker struct {
	log       *slog.Logger
	transport contract.ITransport
	timeout   time.Duration
	maxLinks  int
}

// NewChainWalker returns a walker. maxLinks bounds the number of messages
// visited, zero means unbounded.
func NewChainWalker(log *slog.Logger, transport contract.ITransport, timeout time.Duration, maxLinks int) *ChainWalker {
	return &ChainWalker{log: log, transport: transport, timeout: timeout, maxLinks: maxLinks}
}

// Walk fetches every message of the chain in order and writes their
// attachments to the output returned by open. Whatever was written before
// a failure stays written.
func (w *ChainWalker) Walk(ctx context.Context, head domain.MessageID, open OpenOutput) (WalkResult, error) {
	var (
		result  WalkResult
		out     io.Writer
		visited = make(map[domain.MessageID]struct{})
		id      = head
	)
	for {
		if _, ok := visited[id]; ok {
			return result, fmt.Errorf("%w: message %s after %d links", errors.ErrChainCycle, id, result.Links)
		}
		if w.maxLinks > 0 && result.Links >= w.maxLinks {
			return result, fmt.Errorf("%w: limit is %d", errors.ErrChainTooLong, w.maxLinks)
		}
		visited[id] = struct{}{}

		message, err := w.fetchBundle(ctx, id)
		if err != nil {
			return result, fmt.Errorf("unable to fetch link %d (message %s): %w", result.Links+1, id, err)
		}
		link, err := domain.ParseChainLink(message.Content)
		if err != nil {
			return result, fmt.Errorf("message %s: %w", id, err)
		}

		if out == nil {
			if out, err = open(link.Filename); err != nil {
				return result, err
			}
			result.Filename = link.Filename
		}

		for _, attachment := range message.Attachments {
			data, err := w.fetchAttachment(ctx, attachment)
			if err != nil {
				return result, fmt.Errorf("unable to fetch attachment %d of message %s: %w", attachment.Position, id, err)
			}
			if _, err := out.Write(data); err != nil {
				return result, fmt.Errorf("unable to write attachment %d of message %s: %w", attachment.Position, id, err)
			}
			result.Bytes += int64(len(data))
		}
		result.Links++
		w.log.Debug("Link processed", "message_id", id, "attachments", len(message.Attachments), "bytes", result.Bytes)

		if link.IsTail() {
			return result, nil
		}
		id = *link.Next
	}
}

func (w *ChainWalker) fetchBundle(ctx context.Context, id domain.MessageID) (domain.Message, error) {
	ctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()
	return w.transport.FetchBundle(ctx, id)
}

func (w *ChainWalker) fetchAttachment(ctx context.Context, attachment domain.Attachment) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()
	return w.transport.FetchAttachment(ctx, attachment)
}
