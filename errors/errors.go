package errors

import "fmt"

// Protocol errors, raised while decoding chain metadata.
var (
	ErrEmptyFilename    = fmt.Errorf("chain link has no filename")
	ErrInvalidFilename  = fmt.Errorf("filename cannot be stored in a chain link")
	ErrMalformedLink    = fmt.Errorf("malformed chain link")
	ErrInvalidMessageID = fmt.Errorf("invalid message id")
	ErrChainCycle       = fmt.Errorf("chain refers back to a visited message")
	ErrChainTooLong     = fmt.Errorf("chain exceeds the maximum number of links")
)

// Local errors.
var (
	ErrNoFreePath        = fmt.Errorf("no free path available")
	ErrInsufficientSpace = fmt.Errorf("not enough free space in working directory")
	ErrNotRegularFile    = fmt.Errorf("not a regular file")
)

// Channel store errors.
var (
	ErrMessageNotFound    = fmt.Errorf("message not found")
	ErrAttachmentNotFound = fmt.Errorf("attachment not found")
	ErrTooManyAttachments = fmt.Errorf("too many attachments")
	ErrAttachmentTooLarge = fmt.Errorf("attachment too large")
	ErrReadOnlyStore      = fmt.Errorf("store is opened read-only")
)

// Command line errors.
var (
	ErrNoAction           = fmt.Errorf("use --upload or --download")
	ErrConflictingActions = fmt.Errorf("use either --upload or --download, not both")
	ErrUnknownTransport   = fmt.Errorf("unknown transport")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
)
