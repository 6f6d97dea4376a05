package repositories

import (
	"chat-fs/codec"
	"chat-fs/domain"
	"chat-fs/errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const sequenceKey = "seq:message"

// IMessageRepository lists the messages of a channel, newest first.
type IMessageRepository interface {
	GetMessages(channel domain.ChannelID, cursor *string, limit int) ([]DiskMessage, *string, error)
}

// MessageRepository is a channel store backed by BadgerDB.
// Attachment payloads live under their own keys so a message record stays small.
type MessageRepository struct {
	db                *badger.DB
	log               *slog.Logger
	sequence          *badger.Sequence
	maxAttachments    int
	maxAttachmentSize int64
}

type DiskMessage struct {
	ID          uint64           `cbor:"1,keyasint"`
	Channel     uint64           `cbor:"2,keyasint"`
	Content     string           `cbor:"3,keyasint"`
	Attachments []DiskAttachment `cbor:"4,keyasint"`
	At          time.Time        `cbor:"5,keyasint"`
}

type DiskAttachment struct {
	ID       uuid.UUID `cbor:"1,keyasint"`
	Filename string    `cbor:"2,keyasint"`
	MimeType string    `cbor:"3,keyasint"`
	Size     int64     `cbor:"4,keyasint"`
}

// NewMessageRepository opens the message id sequence. Close must be called
// before the database is closed.
func NewMessageRepository(db *badger.DB, log *slog.Logger, maxAttachments int, maxAttachmentSize int64) (*MessageRepository, error) {
	sequence, err := db.GetSequence([]byte(sequenceKey), 64)
	if err != nil {
		return nil, fmt.Errorf("unable to open message sequence: %w", err)
	}
	return &MessageRepository{
		db:                db,
		log:               log,
		sequence:          sequence,
		maxAttachments:    maxAttachments,
		maxAttachmentSize: maxAttachmentSize,
	}, nil
}

// NewMessageViewer reads a store opened read-only, storing fails.
func NewMessageViewer(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// Close releases the unused part of the id sequence.
func (m *MessageRepository) Close() error {
	if m.sequence == nil {
		return nil
	}
	return m.sequence.Release()
}

// messageKey is "msg:{channel}:{id padded}" so a prefix scan returns a
// channel's messages in id order.
func messageKey(channel domain.ChannelID, id domain.MessageID) []byte {
	return []byte(fmt.Sprintf("msg:%d:%020d", channel, id))
}

func attachmentKey(id uuid.UUID) []byte {
	return []byte("att:" + id.String())
}

// StoreMessage persists a message with its attachments in order and returns
// it as it will be fetched. Attachments are written before the message
// record, each in its own transaction, so a message is only visible once
// complete.
func (m *MessageRepository) StoreMessage(channel domain.ChannelID, content string, uploads []domain.Upload) (domain.Message, error) {
	if m.sequence == nil {
		return domain.Message{}, errors.ErrReadOnlyStore
	}
	if len(uploads) > m.maxAttachments {
		return domain.Message{}, fmt.Errorf("%w: %d given, limit is %d", errors.ErrTooManyAttachments, len(uploads), m.maxAttachments)
	}

	attachments := make([]DiskAttachment, 0, len(uploads))
	for i, upload := range uploads {
		data, err := io.ReadAll(io.LimitReader(upload.Data, m.maxAttachmentSize+1))
		if err != nil {
			return domain.Message{}, fmt.Errorf("unable to read attachment %d: %w", i, err)
		}
		if int64(len(data)) > m.maxAttachmentSize {
			return domain.Message{}, fmt.Errorf("%w: attachment %d exceeds %d bytes", errors.ErrAttachmentTooLarge, i, m.maxAttachmentSize)
		}
		attachment := DiskAttachment{
			ID:       uuid.New(),
			Filename: upload.Filename,
			MimeType: upload.MimeType,
			Size:     int64(len(data)),
		}
		if err := m.db.Update(func(txn *badger.Txn) error {
			return txn.Set(attachmentKey(attachment.ID), data)
		}); err != nil {
			return domain.Message{}, fmt.Errorf("unable to store attachment %d: %w", i, err)
		}
		attachments = append(attachments, attachment)
	}

	next, err := m.sequence.Next()
	if err != nil {
		return domain.Message{}, fmt.Errorf("unable to allocate message id: %w", err)
	}
	message := DiskMessage{
		// Sequence starts at zero, ids start at one
		ID:          next + 1,
		Channel:     uint64(channel),
		Content:     content,
		Attachments: attachments,
		At:          time.Now().UTC(),
	}
	bytes, err := codec.Marshal(message)
	if err != nil {
		return domain.Message{}, err
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(channel, domain.MessageID(message.ID)), bytes)
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("unable to store message: %w", err)
	}
	m.log.Debug("Message stored", "channel", channel, "message_id", message.ID, "attachments", len(attachments))
	return toDomainMessage(message), nil
}

// GetMessage returns one message of a channel.
func (m *MessageRepository) GetMessage(channel domain.ChannelID, id domain.MessageID) (domain.Message, error) {
	message, err := m.getDiskMessage(channel, id)
	if err != nil {
		return domain.Message{}, err
	}
	return toDomainMessage(message), nil
}

// GetAttachment returns the payload of the attachment at position in a message.
func (m *MessageRepository) GetAttachment(channel domain.ChannelID, id domain.MessageID, position int) ([]byte, error) {
	message, err := m.getDiskMessage(channel, id)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= len(message.Attachments) {
		return nil, fmt.Errorf("%w: position %d in message %s", errors.ErrAttachmentNotFound, position, id)
	}
	var data []byte
	err = m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(attachmentKey(message.Attachments[position].ID))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: position %d in message %s", errors.ErrAttachmentNotFound, position, id)
	}
	return data, err
}

func (m *MessageRepository) getDiskMessage(channel domain.ChannelID, id domain.MessageID) (DiskMessage, error) {
	var message DiskMessage
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(messageKey(channel, id))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return codec.Unmarshal(value, &message)
		})
	})
	if err == badger.ErrKeyNotFound {
		return DiskMessage{}, fmt.Errorf("%w: %s in channel %s", errors.ErrMessageNotFound, id, channel)
	}
	if err != nil {
		return DiskMessage{}, err
	}
	return message, nil
}

// GetMessages retrieves the messages of a channel, newest first, using a
// reverse prefix scan. The returned cursor resumes after the last message.
func (m *MessageRepository) GetMessages(channel domain.ChannelID, cursor *string, limit int) ([]DiskMessage, *string, error) {
	var diskMessages []DiskMessage
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%d:", channel)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Past the highest possible padded id
			seekKey = append(prefix, []byte("99999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(diskMessages) == limit {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", limit))
				break
			}
			item := it.Item()
			// Memorize cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				var message DiskMessage
				if err := codec.Unmarshal(value, &message); err != nil {
					return err
				}
				diskMessages = append(diskMessages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return diskMessages, &lastKey, nil
}

func toDomainMessage(message DiskMessage) domain.Message {
	return domain.Message{
		ID:        domain.MessageID(message.ID),
		ChannelID: domain.ChannelID(message.Channel),
		Content:   message.Content,
		Attachments: lo.Map(message.Attachments, func(a DiskAttachment, i int) domain.Attachment {
			return domain.Attachment{
				ID:        a.ID.String(),
				MessageID: domain.MessageID(message.ID),
				Filename:  a.Filename,
				MimeType:  a.MimeType,
				Size:      a.Size,
				Position:  i,
			}
		}),
	}
}
