package grpc

import (
	"bytes"
	"chat-fs/auth"
	"chat-fs/domain"
	"chat-fs/errors"
	"chat-fs/infrastructure/grpc/server"
	pb "chat-fs/proto/channel"
	"chat-fs/repositories"
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

var secret = []byte("grpc_transport_test_secret")

// startServer runs a channel server over an in-memory listener and returns
// a client connected to it.
func startServer(t *testing.T) pb.ChannelServiceClient {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	repository, err := repositories.NewMessageRepository(db, log, domain.MaxBundleSize, 1024)
	require.NoError(t, err)

	listener := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer(
		grpc.UnaryInterceptor(auth.AuthInterceptor(secret)),
		grpc.MaxRecvMsgSize(pb.MaxMessageSize),
	)
	pb.RegisterChannelServiceServer(s, server.NewChannelServer(log, repository))
	go func() {
		_ = s.Serve(listener)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		s.Stop()
		_ = repository.Close()
		_ = db.Close()
	})
	return pb.NewChannelServiceClient(conn)
}

func token(t *testing.T, channels ...uint64) string {
	tok, err := auth.GenerateToken(secret, "test-client", channels, time.Hour)
	require.NoError(t, err)
	return tok
}

func payload(name, data string) domain.Upload {
	return domain.Upload{Filename: name, MimeType: "text/plain", Size: int64(len(data)), Data: bytes.NewReader([]byte(data))}
}

func TestTransport_SendAndFetch(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	transport := NewTransport(startServer(t), 5, token(t))

	id, err := transport.SendBundle(ctx, []domain.Upload{payload("0", "hello "), payload("1", "world")}, "greeting.txt\n12")
	req.NoError(err)

	message, err := transport.FetchBundle(ctx, id)
	req.NoError(err)
	req.Equal(id, message.ID)
	req.Equal(domain.ChannelID(5), message.ChannelID)
	req.Equal("greeting.txt\n12", message.Content)
	req.Len(message.Attachments, 2)

	var content []byte
	for _, attachment := range message.Attachments {
		req.Equal(id, attachment.MessageID)
		data, err := transport.FetchAttachment(ctx, attachment)
		req.NoError(err)
		content = append(content, data...)
	}
	req.Equal("hello world", string(content))
}

func TestTransport_UnknownMessage(t *testing.T) {
	transport := NewTransport(startServer(t), 5, token(t))
	_, err := transport.FetchBundle(context.Background(), 404)
	require.ErrorIs(t, err, errors.ErrMessageNotFound)
}

func TestTransport_UnknownAttachment(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	transport := NewTransport(startServer(t), 5, token(t))

	id, err := transport.SendBundle(ctx, []domain.Upload{payload("0", "only one")}, "single.txt")
	req.NoError(err)

	_, err = transport.FetchAttachment(ctx, domain.Attachment{MessageID: id, Position: 3})
	req.ErrorIs(err, errors.ErrAttachmentNotFound)
	req.NotErrorIs(err, errors.ErrMessageNotFound)
}

func TestTransport_LimitsAreReported(t *testing.T) {
	req := require.New(t)
	transport := NewTransport(startServer(t), 5, token(t))

	_, err := transport.SendBundle(context.Background(), []domain.Upload{payload("0", string(make([]byte, 1025)))}, "big")
	req.Equal(codes.InvalidArgument, status.Code(err))
}

func TestTransport_Authentication(t *testing.T) {
	req := require.New(t)
	client := startServer(t)

	_, err := NewTransport(client, 5, "").FetchBundle(context.Background(), 1)
	req.Equal(codes.Unauthenticated, status.Code(err))

	_, err = NewTransport(client, 5, token(t, 6)).FetchBundle(context.Background(), 1)
	req.Equal(codes.PermissionDenied, status.Code(err))
}
