package services

import (
	"fmt"
	"io"
)

// Chunker reads a byte stream as a sequence of chunks of at most size bytes.
// Only the last chunk may be shorter and no chunk is ever empty, so an empty
// stream produces no chunk at all.
type Chunker struct {
	r     io.Reader
	size  int
	index int
	done  bool
}

func NewChunker(r io.Reader, size int) *Chunker {
	return &Chunker{r: r, size: size}
}

// Next returns the next chunk, or io.EOF once the stream is exhausted.
// The returned slice is owned by the caller.
func (c *Chunker) Next() ([]byte, error) {
	if c.done {
		return nil, io.EOF
	}
	buf := make([]byte, c.size)
	n, err := io.ReadFull(c.r, buf)
	switch {
	case err == io.EOF:
		c.done = true
		return nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		// Short read at the end of the stream
		c.done = true
	case err != nil:
		c.done = true
		return nil, fmt.Errorf("unable to read chunk %d: %w", c.index, err)
	}
	c.index++
	return buf[:n], nil
}

// Index is the number of chunks returned so far.
func (c *Chunker) Index() int {
	return c.index
}
