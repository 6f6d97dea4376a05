package main

import (
	"chat-fs/domain"
	"chat-fs/errors"
	"chat-fs/internal"
	"chat-fs/services"
	"chat-fs/storage"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// action is what the command line asked for, exactly one of both.
type action struct {
	upload   string
	download *domain.MessageID
}

func parseArgs(args []string) (action, error) {
	flags := pflag.NewFlagSet("chatfs", pflag.ContinueOnError)
	upload := flags.StringP("upload", "u", "", "path of the file to upload")
	download := flags.StringP("download", "d", "", "head message id of the file to download")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: chatfs (--upload <path> | --download <id>)\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return action{}, err
	}
	if flags.NArg() > 0 {
		return action{}, fmt.Errorf("unexpected argument %q", flags.Arg(0))
	}

	uploadSet, downloadSet := flags.Changed("upload"), flags.Changed("download")
	switch {
	case uploadSet && downloadSet:
		return action{}, errors.ErrConflictingActions
	case uploadSet:
		return action{upload: *upload}, nil
	case downloadSet:
		id, err := domain.ParseMessageID(*download)
		if err != nil {
			return action{}, err
		}
		return action{download: &id}, nil
	default:
		return action{}, errors.ErrNoAction
	}
}

func run(args []string, stdout io.Writer) error {
	// 1. Command line
	act, err := parseArgs(args)
	if err != nil {
		return err
	}

	// 2. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	channel, err := config.Channel()
	if err != nil {
		return err
	}

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Transport
	transport, closeTransport, err := newTransport(config, channel, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeTransport(); err != nil {
			log.Warn("Unable to close transport", "error", err)
		}
	}()

	// 5. Scratch directory, removed whatever happens
	workDir, err := storage.NewWorkDir(config.WorkDir, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := workDir.Remove(); err != nil {
			log.Warn("Unable to remove working directory", "error", err)
		}
	}()

	service := services.NewBlobService(log, transport, workDir, services.BlobServiceConfig{
		OutputDir:      config.OutputDir,
		Timeout:        config.TransportTimeout,
		MaxChainLength: config.MaxChainLength,
	})

	// 6. Action, the result is the only thing written to stdout
	if act.download != nil {
		path, err := service.Download(ctx, *act.download)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, path)
		return err
	}
	head, err := service.Upload(ctx, act.upload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, head)
	return err
}
