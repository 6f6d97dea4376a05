// Package local is a transport writing straight into a channel store
// opened by the same process.
package local

import (
	"chat-fs/contract"
	"chat-fs/domain"
	"context"
)

type Transport struct {
	store   contract.IChannelStore
	channel domain.ChannelID
}

func NewTransport(store contract.IChannelStore, channel domain.ChannelID) *Transport {
	return &Transport{store: store, channel: channel}
}

func (t *Transport) SendBundle(ctx context.Context, attachments []domain.Upload, content string) (domain.MessageID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	message, err := t.store.StoreMessage(t.channel, content, attachments)
	if err != nil {
		return 0, err
	}
	return message.ID, nil
}

func (t *Transport) FetchBundle(ctx context.Context, id domain.MessageID) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}
	return t.store.GetMessage(t.channel, id)
}

func (t *Transport) FetchAttachment(ctx context.Context, attachment domain.Attachment) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.store.GetAttachment(t.channel, attachment.MessageID, attachment.Position)
}
