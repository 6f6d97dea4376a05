// Package grpc is a transport talking to a chat-fs channel server.
package grpc

import (
	"chat-fs/domain"
	"chat-fs/errors"
	pb "chat-fs/proto/channel"
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type Transport struct {
	client  pb.ChannelServiceClient
	channel domain.ChannelID
	token   string
}

func NewTransport(client pb.ChannelServiceClient, channel domain.ChannelID, token string) *Transport {
	return &Transport{client: client, channel: channel, token: token}
}

// Dial opens a client connection sized for full bundles.
func Dial(addr string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(pb.MaxMessageSize),
			grpc.MaxCallSendMsgSize(pb.MaxMessageSize),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %s: %w", addr, err)
	}
	return conn, nil
}

func (t *Transport) authorize(ctx context.Context) context.Context {
	if t.token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+t.token)
}

func (t *Transport) SendBundle(ctx context.Context, attachments []domain.Upload, content string) (domain.MessageID, error) {
	request := &pb.SendMessageRequest{
		ChannelId:   uint64(t.channel),
		Content:     content,
		Attachments: make([]*pb.Attachment, 0, len(attachments)),
	}
	for i, a := range attachments {
		data, err := io.ReadAll(a.Data)
		if err != nil {
			return 0, fmt.Errorf("unable to read attachment %d: %w", i, err)
		}
		request.Attachments = append(request.Attachments, &pb.Attachment{
			Filename: a.Filename,
			MimeType: a.MimeType,
			Data:     data,
		})
	}
	response, err := t.client.SendMessage(t.authorize(ctx), request)
	if err != nil {
		return 0, errors.FromGRPCError(err)
	}
	if response.Message == nil {
		return 0, fmt.Errorf("channel server returned no message")
	}
	return domain.MessageID(response.Message.Id), nil
}

func (t *Transport) FetchBundle(ctx context.Context, id domain.MessageID) (domain.Message, error) {
	response, err := t.client.GetMessage(t.authorize(ctx), &pb.GetMessageRequest{
		ChannelId: uint64(t.channel),
		MessageId: uint64(id),
	})
	if err != nil {
		return domain.Message{}, errors.FromGRPCError(err)
	}
	return fromPbMessage(response.Message), nil
}

func (t *Transport) FetchAttachment(ctx context.Context, attachment domain.Attachment) ([]byte, error) {
	response, err := t.client.GetAttachment(t.authorize(ctx), &pb.GetAttachmentRequest{
		ChannelId: uint64(t.channel),
		MessageId: uint64(attachment.MessageID),
		Position:  int32(attachment.Position),
	})
	if err != nil {
		return nil, errors.FromGRPCError(err)
	}
	return response.Data, nil
}

func fromPbMessage(message *pb.Message) domain.Message {
	if message == nil {
		return domain.Message{}
	}
	return domain.Message{
		ID:        domain.MessageID(message.Id),
		ChannelID: domain.ChannelID(message.ChannelId),
		Content:   message.Content,
		Attachments: lo.Map(message.Attachments, func(a *pb.AttachmentInfo, _ int) domain.Attachment {
			return domain.Attachment{
				ID:        a.Id,
				MessageID: domain.MessageID(message.Id),
				Filename:  a.Filename,
				MimeType:  a.MimeType,
				Size:      a.Size,
				Position:  int(a.Position),
			}
		}),
	}
}
