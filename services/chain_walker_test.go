package services

import (
	"bytes"
	"chat-fs/domain"
	"chat-fs/errors"
	"chat-fs/mocks"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// chain is an in memory view of messages keyed by ID, served through the mock.
type chain map[domain.MessageID]domain.Message

func (c chain) add(id domain.MessageID, content string, payloads ...string) {
	message := domain.Message{ID: id, Content: content}
	for i, p := range payloads {
		message.Attachments = append(message.Attachments, domain.Attachment{
			ID:        p,
			MessageID: id,
			Position:  i,
			Size:      int64(len(p)),
		})
	}
	c[id] = message
}

func (c chain) serve(transport *mocks.MockITransport) {
	transport.EXPECT().FetchBundle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.MessageID) (domain.Message, error) {
			message, ok := c[id]
			if !ok {
				return domain.Message{}, errors.ErrMessageNotFound
			}
			return message, nil
		}).AnyTimes()
	transport.EXPECT().FetchAttachment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, attachment domain.Attachment) ([]byte, error) {
			return []byte(attachment.ID), nil
		}).AnyTimes()
}

func newWalker(t *testing.T, c chain, maxLinks int) *ChainWalker {
	transport := mocks.NewMockITransport(gomock.NewController(t))
	c.serve(transport)
	return NewChainWalker(logs.GetLoggerFromLevel(slog.LevelDebug), transport, time.Second, maxLinks)
}

func bufferOutput(buf *bytes.Buffer, names *[]string) OpenOutput {
	return func(filename string) (io.Writer, error) {
		*names = append(*names, filename)
		return buf, nil
	}
}

func TestChainWalker_FollowsLinksInOrder(t *testing.T) {
	req := require.New(t)
	c := chain{}
	c.add(1, "song.mp3\n2", "a", "b")
	c.add(2, "song.mp3\n3", "c", "d")
	c.add(3, "song.mp3", "e")
	walker := newWalker(t, c, 0)

	var (
		buf   bytes.Buffer
		names []string
	)
	result, err := walker.Walk(context.Background(), 1, bufferOutput(&buf, &names))
	req.NoError(err)
	req.Equal("abcde", buf.String())
	// The output is opened once, with the name read from the head
	req.Equal([]string{"song.mp3"}, names)
	req.Equal(WalkResult{Filename: "song.mp3", Links: 3, Bytes: 5}, result)
}

func TestChainWalker_EmptyHead(t *testing.T) {
	req := require.New(t)
	c := chain{}
	c.add(9, "empty.bin")
	walker := newWalker(t, c, 0)

	var (
		buf   bytes.Buffer
		names []string
	)
	result, err := walker.Walk(context.Background(), 9, bufferOutput(&buf, &names))
	req.NoError(err)
	req.Equal([]string{"empty.bin"}, names)
	req.Zero(buf.Len())
	req.Equal(1, result.Links)
}

func TestChainWalker_DetectsCycle(t *testing.T) {
	req := require.New(t)
	c := chain{}
	c.add(1, "loop\n2", "a")
	c.add(2, "loop\n1", "b")
	walker := newWalker(t, c, 0)

	var (
		buf   bytes.Buffer
		names []string
	)
	result, err := walker.Walk(context.Background(), 1, bufferOutput(&buf, &names))
	req.ErrorIs(err, errors.ErrChainCycle)
	req.Equal(2, result.Links)
	req.Equal("ab", buf.String())
}

func TestChainWalker_MaxLinks(t *testing.T) {
	req := require.New(t)
	c := chain{}
	c.add(1, "f\n2", "a")
	c.add(2, "f\n3", "b")
	c.add(3, "f", "c")
	walker := newWalker(t, c, 2)

	var (
		buf   bytes.Buffer
		names []string
	)
	_, err := walker.Walk(context.Background(), 1, bufferOutput(&buf, &names))
	req.ErrorIs(err, errors.ErrChainTooLong)
}

func TestChainWalker_MalformedLink(t *testing.T) {
	req := require.New(t)
	c := chain{}
	c.add(1, "f\n2", "a")
	c.add(2, "f\nnot-a-number", "b")
	walker := newWalker(t, c, 0)

	var (
		buf   bytes.Buffer
		names []string
	)
	_, err := walker.Walk(context.Background(), 1, bufferOutput(&buf, &names))
	req.ErrorIs(err, errors.ErrMalformedLink)
	// Partial output stays
	req.Equal("a", buf.String())
}

func TestChainWalker_MissingSuccessor(t *testing.T) {
	req := require.New(t)
	c := chain{}
	c.add(1, "f\n404", "a")
	walker := newWalker(t, c, 0)

	var (
		buf   bytes.Buffer
		names []string
	)
	_, err := walker.Walk(context.Background(), 1, bufferOutput(&buf, &names))
	req.ErrorIs(err, errors.ErrMessageNotFound)
	req.ErrorContains(err, "link 2")
}

func TestChainWalker_AttachmentFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockITransport(ctrl)
	walker := NewChainWalker(logs.GetLoggerFromLevel(slog.LevelDebug), transport, time.Second, 0)
	boom := stderrors.New("connection reset")

	transport.EXPECT().FetchBundle(gomock.Any(), domain.MessageID(5)).Return(domain.Message{
		ID:          5,
		Content:     "f",
		Attachments: []domain.Attachment{{ID: "x", MessageID: 5}},
	}, nil)
	transport.EXPECT().FetchAttachment(gomock.Any(), gomock.Any()).Return(nil, boom)

	var (
		buf   bytes.Buffer
		names []string
	)
	_, err := walker.Walk(context.Background(), 5, bufferOutput(&buf, &names))
	req.ErrorIs(err, boom)
}

func TestChainWalker_OpenFailure(t *testing.T) {
	req := require.New(t)
	c := chain{}
	c.add(1, "f", "a")
	walker := newWalker(t, c, 0)
	boom := stderrors.New("read-only file system")

	_, err := walker.Walk(context.Background(), 1, func(string) (io.Writer, error) { return nil, boom })
	req.ErrorIs(err, boom)
}
