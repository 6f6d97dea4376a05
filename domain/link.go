package domain

import (
	"chat-fs/errors"
	"fmt"
	"strings"
)

// ChainLink is the metadata carried in the content of every bundle message.
// Next is nil on the tail of the chain.
type ChainLink struct {
	Filename string
	Next     *MessageID
}

// IsTail reports whether the link has no successor.
func (l ChainLink) IsTail() bool {
	return l.Next == nil
}

// Encode renders the link as "<filename>" or "<filename>\n<next id>".
// Chains stored by earlier versions use the same format.
func (l ChainLink) Encode() string {
	if l.Next == nil {
		return l.Filename
	}
	return l.Filename + "\n" + l.Next.String()
}

// ParseChainLink decodes message content produced by Encode.
func ParseChainLink(content string) (ChainLink, error) {
	filename, next, hasNext := strings.Cut(content, "\n")
	if filename == "" {
		return ChainLink{}, errors.ErrEmptyFilename
	}
	if !hasNext {
		return ChainLink{Filename: filename}, nil
	}
	id, err := ParseMessageID(next)
	if err != nil {
		return ChainLink{}, fmt.Errorf("%w: %w", errors.ErrMalformedLink, err)
	}
	return ChainLink{Filename: filename, Next: &id}, nil
}

// ValidateFilename checks a name can be carried by a link without ambiguity.
func ValidateFilename(name string) error {
	if name == "" {
		return errors.ErrEmptyFilename
	}
	if strings.Contains(name, "\n") {
		return fmt.Errorf("%w: %q", errors.ErrInvalidFilename, name)
	}
	return nil
}
