// Package domain contains core concepts of the chain store.
// This file defines remote messages as seen through a transport.
package domain

import (
	"chat-fs/errors"
	"fmt"
	"io"
	"strconv"
)

// MessageID identifies a remote message inside a channel.
// It is rendered as a decimal string on the wire, like a Discord snowflake.
type MessageID uint64

func (id MessageID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseMessageID parses the decimal form of a MessageID.
func ParseMessageID(s string) (MessageID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidMessageID, s)
	}
	return MessageID(v), nil
}

// ChannelID is the destination a transport writes messages to.
type ChannelID uint64

func (id ChannelID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Upload is one attachment handed to a transport when sending a bundle.
// Data is consumed exactly once.
type Upload struct {
	Filename string
	MimeType string
	Size     int64
	Data     io.Reader
}

// Attachment is a fetchable handle on a stored attachment.
// Position is its index in the message, URL is only set by transports
// that download attachments from a separate location.
type Attachment struct {
	ID        string
	MessageID MessageID
	Filename  string
	MimeType  string
	Size      int64
	Position  int
	URL       string
}

// Message is a remote message with its attachments in recorded order.
type Message struct {
	ID          MessageID
	ChannelID   ChannelID
	Content     string
	Attachments []Attachment
}
