//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-fs/domain"
	"context"
)

// ITransport is the remote side of the chain store: a channel that keeps
// messages with ordered attachments. Every implementation is bound to one
// channel when it is built.
type ITransport interface {
	// SendBundle creates one message carrying all attachments in order
	// and the given content, and returns its identifier.
	SendBundle(ctx context.Context, attachments []domain.Upload, content string) (domain.MessageID, error)
	// FetchBundle returns the message content and its attachment handles
	// in the order they were sent.
	FetchBundle(ctx context.Context, id domain.MessageID) (domain.Message, error)
	// FetchAttachment downloads the bytes of one attachment.
	FetchAttachment(ctx context.Context, attachment domain.Attachment) ([]byte, error)
}

// IChannelStore persists channel messages and their attachment payloads.
type IChannelStore interface {
	StoreMessage(channel domain.ChannelID, content string, attachments []domain.Upload) (domain.Message, error)
	GetMessage(channel domain.ChannelID, id domain.MessageID) (domain.Message, error)
	GetAttachment(channel domain.ChannelID, id domain.MessageID, position int) ([]byte, error)
}
