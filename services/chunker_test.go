package services

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func readAllChunks(t *testing.T, r io.Reader, size int) [][]byte {
	chunker := NewChunker(r, size)
	var chunks [][]byte
	for {
		chunk, err := chunker.Next()
		if err == io.EOF {
			return chunks
		}
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}
}

func TestChunker_Counts(t *testing.T) {
	const size = 16
	cases := []struct {
		length   int
		expected int
		last     int
	}{
		{length: 0, expected: 0},
		{length: 1, expected: 1, last: 1},
		{length: size, expected: 1, last: size},
		{length: size + 1, expected: 2, last: 1},
		{length: 5*size - 3, expected: 5, last: size - 3},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("length=%d", tc.length), func(t *testing.T) {
			req := require.New(t)
			data := bytes.Repeat([]byte{0xAB}, tc.length)

			chunks := readAllChunks(t, bytes.NewReader(data), size)

			req.Len(chunks, tc.expected)
			for i, chunk := range chunks {
				req.NotEmpty(chunk)
				if i < len(chunks)-1 {
					req.Len(chunk, size)
				}
			}
			if tc.expected > 0 {
				req.Len(chunks[len(chunks)-1], tc.last)
			}
			req.Equal(data, bytes.Join(chunks, nil))
		})
	}
}

func TestChunker_StaysExhausted(t *testing.T) {
	req := require.New(t)
	chunker := NewChunker(bytes.NewReader([]byte("abc")), 2)

	_, err := chunker.Next()
	req.NoError(err)
	_, err = chunker.Next()
	req.NoError(err)
	req.Equal(2, chunker.Index())

	_, err = chunker.Next()
	req.ErrorIs(err, io.EOF)
	_, err = chunker.Next()
	req.ErrorIs(err, io.EOF)
}

type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestChunker_ReadFailure(t *testing.T) {
	req := require.New(t)
	boom := stderrors.New("device unplugged")
	chunker := NewChunker(&failingReader{data: []byte("0123456789"), err: boom}, 4)

	first, err := chunker.Next()
	req.NoError(err)
	req.Equal("0123", string(first))
	second, err := chunker.Next()
	req.NoError(err)
	req.Equal("4567", string(second))

	// No partial chunk comes with the error
	third, err := chunker.Next()
	req.Nil(third)
	req.ErrorIs(err, boom)
	req.ErrorContains(err, "chunk 2")
}
