package repositories

import (
	"bytes"
	"chat-fs/domain"
	"chat-fs/errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// SetupTestDB initializes a temporary Badger instance for testing
func SetupTestDB(t *testing.T) (*badger.DB, func()) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)

	return db, func() {
		db.Close()
	}
}

func newRepository(t *testing.T, db *badger.DB) *MessageRepository {
	repository, err := NewMessageRepository(db, logs.GetLoggerFromLevel(slog.LevelDebug), domain.MaxBundleSize, 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close() })
	return repository
}

func uploads(payloads ...string) []domain.Upload {
	var result []domain.Upload
	for i, p := range payloads {
		result = append(result, domain.Upload{
			Filename: fmt.Sprintf("%d", i),
			MimeType: "text/plain",
			Size:     int64(len(p)),
			Data:     bytes.NewReader([]byte(p)),
		})
	}
	return result
}

func Test_Store_And_Get_Message(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	repository := newRepository(t, db)
	channel := domain.ChannelID(99)

	stored, err := repository.StoreMessage(channel, "notes.txt\n12", uploads("first", "second", "third"))
	req.NoError(err)
	req.Equal(domain.MessageID(1), stored.ID)

	fetched, err := repository.GetMessage(channel, stored.ID)
	req.NoError(err)
	req.Equal(stored, fetched)
	req.Equal("notes.txt\n12", fetched.Content)
	req.Len(fetched.Attachments, 3)

	// Attachments come back in the order they were sent
	for i, want := range []string{"first", "second", "third"} {
		req.Equal(i, fetched.Attachments[i].Position)
		req.Equal(int64(len(want)), fetched.Attachments[i].Size)
		data, err := repository.GetAttachment(channel, stored.ID, i)
		req.NoError(err)
		req.Equal(want, string(data))
	}
}

func Test_Message_Ids_Are_Increasing(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	repository := newRepository(t, db)

	var last domain.MessageID
	for i := 0; i < 5; i++ {
		message, err := repository.StoreMessage(1, "file", nil)
		req.NoError(err)
		req.Greater(message.ID, last)
		req.Empty(message.Attachments)
		last = message.ID
	}
}

func Test_Message_Is_Scoped_To_Its_Channel(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	repository := newRepository(t, db)

	message, err := repository.StoreMessage(1, "file", uploads("data"))
	req.NoError(err)

	_, err = repository.GetMessage(2, message.ID)
	req.ErrorIs(err, errors.ErrMessageNotFound)
	_, err = repository.GetAttachment(2, message.ID, 0)
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func Test_Unknown_Attachment_Position(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	repository := newRepository(t, db)

	message, err := repository.StoreMessage(1, "file", uploads("data"))
	req.NoError(err)

	_, err = repository.GetAttachment(1, message.ID, 1)
	req.ErrorIs(err, errors.ErrAttachmentNotFound)
	_, err = repository.GetAttachment(1, message.ID, -1)
	req.ErrorIs(err, errors.ErrAttachmentNotFound)
}

func Test_Limits_Are_Enforced(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	repository := newRepository(t, db)

	_, err := repository.StoreMessage(1, "file", uploads("1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"))
	req.ErrorIs(err, errors.ErrTooManyAttachments)

	_, err = repository.StoreMessage(1, "file", uploads(string(make([]byte, 1025))))
	req.ErrorIs(err, errors.ErrAttachmentTooLarge)

	message, err := repository.StoreMessage(1, "file", uploads(string(make([]byte, 1024))))
	req.NoError(err)
	req.Equal(int64(1024), message.Attachments[0].Size)
}

func Test_Get_Messages_Newest_First_With_Cursor(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	repository := newRepository(t, db)

	for i := 0; i < 5; i++ {
		_, err := repository.StoreMessage(7, fmt.Sprintf("file-%d", i), nil)
		req.NoError(err)
	}
	_, err := repository.StoreMessage(8, "other channel", nil)
	req.NoError(err)

	page, cursor, err := repository.GetMessages(7, nil, 2)
	req.NoError(err)
	req.Len(page, 2)
	req.Equal("file-4", page[0].Content)
	req.Equal("file-3", page[1].Content)

	page, _, err = repository.GetMessages(7, cursor, 0)
	req.NoError(err)
	req.Len(page, 3)
	req.Equal("file-2", page[0].Content)
	req.Equal("file-0", page[2].Content)
}

func Test_Viewer_Reads_But_Does_Not_Store(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()
	repository := newRepository(t, db)
	stored, err := repository.StoreMessage(3, "seen.txt", uploads("abc"))
	req.NoError(err)

	viewer := NewMessageViewer(db, logs.GetLoggerFromLevel(slog.LevelDebug))
	message, err := viewer.GetMessage(3, stored.ID)
	req.NoError(err)
	req.Equal("seen.txt", message.Content)

	_, err = viewer.StoreMessage(3, "nope", nil)
	req.ErrorIs(err, errors.ErrReadOnlyStore)
	req.NoError(viewer.Close())
}
