package main

import (
	"bytes"
	"chat-fs/domain"
	"chat-fs/errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Run("upload long and short", func(t *testing.T) {
		for _, args := range [][]string{{"--upload", "a.txt"}, {"-u", "a.txt"}} {
			act, err := parseArgs(args)
			require.NoError(t, err)
			require.Equal(t, "a.txt", act.upload)
			require.Nil(t, act.download)
		}
	})
	t.Run("download", func(t *testing.T) {
		act, err := parseArgs([]string{"-d", "1234567890123456789"})
		require.NoError(t, err)
		require.NotNil(t, act.download)
		require.Equal(t, domain.MessageID(1234567890123456789), *act.download)
	})
	t.Run("no action", func(t *testing.T) {
		_, err := parseArgs(nil)
		require.ErrorIs(t, err, errors.ErrNoAction)
	})
	t.Run("both actions", func(t *testing.T) {
		_, err := parseArgs([]string{"-u", "a", "-d", "1"})
		require.ErrorIs(t, err, errors.ErrConflictingActions)
	})
	t.Run("bad id", func(t *testing.T) {
		_, err := parseArgs([]string{"--download", "abc"})
		require.ErrorIs(t, err, errors.ErrInvalidMessageID)
	})
	t.Run("help", func(t *testing.T) {
		_, err := parseArgs([]string{"--help"})
		require.ErrorIs(t, err, pflag.ErrHelp)
	})
	t.Run("stray argument", func(t *testing.T) {
		_, err := parseArgs([]string{"-u", "a", "b"})
		require.ErrorContains(t, err, "unexpected argument")
	})
}

func TestRun_LocalRoundTrip(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	t.Chdir(root)
	t.Setenv("TRANSPORT", "local")
	t.Setenv("DISCORD_FS_CHANNEL_ID", "42")
	t.Setenv("BADGER_FILEPATH", filepath.Join(root, "badger"))
	t.Setenv("WORK_DIR", filepath.Join(root, "work"))
	t.Setenv("OUTPUT_DIR", filepath.Join(root, "out"))
	req.NoError(os.Mkdir(filepath.Join(root, "out"), 0o755))

	input := filepath.Join(root, "hello.txt")
	req.NoError(os.WriteFile(input, []byte("hello over chat"), 0o644))

	var stdout bytes.Buffer
	req.NoError(run([]string{"--upload", input}, &stdout))
	head := strings.TrimSpace(stdout.String())
	req.NotEmpty(head)

	stdout.Reset()
	req.NoError(run([]string{"--download", head}, &stdout))
	path := strings.TrimSpace(stdout.String())
	req.Equal(filepath.Join(root, "out", "hello.txt"), path)

	data, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal("hello over chat", string(data))

	// The scratch directory does not outlive the process
	_, err = os.Stat(filepath.Join(root, "work"))
	req.ErrorIs(err, os.ErrNotExist)
}

func TestRun_UnknownTransport(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRANSPORT", "carrier-pigeon")
	t.Setenv("DISCORD_FS_CHANNEL_ID", "42")

	err := run([]string{"-u", "x"}, &bytes.Buffer{})
	require.ErrorIs(t, err, errors.ErrInvalidConfig)
}
