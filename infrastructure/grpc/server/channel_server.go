package server

import (
	"bytes"
	"chat-fs/auth"
	"chat-fs/contract"
	"chat-fs/domain"
	"chat-fs/errors"
	pb "chat-fs/proto/channel"
	"context"
	"log/slog"

	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ChannelServer exposes a channel store over gRPC.
type ChannelServer struct {
	store contract.IChannelStore
	log   *slog.Logger
}

func NewChannelServer(log *slog.Logger, store contract.IChannelStore) *ChannelServer {
	return &ChannelServer{store: store, log: log}
}

func (s *ChannelServer) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.SendMessageResponse, error) {
	if err := checkChannel(ctx, req.ChannelId); err != nil {
		return nil, err
	}
	uploads := lo.Map(req.Attachments, func(a *pb.Attachment, _ int) domain.Upload {
		return domain.Upload{
			Filename: a.Filename,
			MimeType: a.MimeType,
			Size:     int64(len(a.Data)),
			Data:     bytes.NewReader(a.Data),
		}
	})
	message, err := s.store.StoreMessage(domain.ChannelID(req.ChannelId), req.Content, uploads)
	if err != nil {
		s.log.Warn("Message rejected", "channel", req.ChannelId, "attachments", len(uploads), "error", err)
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.SendMessageResponse{Message: toPbMessage(message)}, nil
}

func (s *ChannelServer) GetMessage(ctx context.Context, req *pb.GetMessageRequest) (*pb.GetMessageResponse, error) {
	if err := checkChannel(ctx, req.ChannelId); err != nil {
		return nil, err
	}
	message, err := s.store.GetMessage(domain.ChannelID(req.ChannelId), domain.MessageID(req.MessageId))
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.GetMessageResponse{Message: toPbMessage(message)}, nil
}

func (s *ChannelServer) GetAttachment(ctx context.Context, req *pb.GetAttachmentRequest) (*pb.GetAttachmentResponse, error) {
	if err := checkChannel(ctx, req.ChannelId); err != nil {
		return nil, err
	}
	data, err := s.store.GetAttachment(domain.ChannelID(req.ChannelId), domain.MessageID(req.MessageId), int(req.Position))
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.GetAttachmentResponse{Data: data}, nil
}

// checkChannel enforces the channel restriction of the caller's token.
// Calls that did not go through the auth interceptor are not restricted.
func checkChannel(ctx context.Context, channel uint64) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if ok && !claims.CanAccess(channel) {
		return status.Errorf(codes.PermissionDenied, "channel %d is not allowed for %s", channel, claims.ClientID)
	}
	return nil
}

func toPbMessage(message domain.Message) *pb.Message {
	return &pb.Message{
		Id:        uint64(message.ID),
		ChannelId: uint64(message.ChannelID),
		Content:   message.Content,
		Attachments: lo.Map(message.Attachments, func(a domain.Attachment, _ int) *pb.AttachmentInfo {
			return &pb.AttachmentInfo{
				Id:       a.ID,
				Filename: a.Filename,
				MimeType: a.MimeType,
				Size:     a.Size,
				Position: int32(a.Position),
			}
		}),
	}
}
