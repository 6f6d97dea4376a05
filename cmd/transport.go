package main

import (
	"chat-fs/contract"
	"chat-fs/domain"
	"chat-fs/errors"
	"chat-fs/internal"
	pb "chat-fs/proto/channel"
	"chat-fs/repositories"
	"chat-fs/transport/discord"
	"chat-fs/transport/grpc"
	"chat-fs/transport/local"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dgraph-io/badger/v4"
)

// newTransport builds the transport named by the configuration and the
// function releasing what it holds.
func newTransport(config internal.Config, channel domain.ChannelID, log *slog.Logger) (contract.ITransport, func() error, error) {
	switch config.Transport {
	case internal.TransportDiscord:
		client := &http.Client{}
		return discord.NewTransport(client, log, config.DiscordAPIURL, config.Token, channel), func() error { return nil }, nil

	case internal.TransportGRPC:
		conn, err := grpc.Dial(config.ServerAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to dial %s: %w", config.ServerAddr, err)
		}
		client := pb.NewChannelServiceClient(conn)
		return grpc.NewTransport(client, channel, config.Token), conn.Close, nil

	case internal.TransportLocal:
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
			WithLoggingLevel(badger.WARNING))
		if err != nil {
			return nil, nil, fmt.Errorf("database opening failed: %w", err)
		}
		repository, err := repositories.NewMessageRepository(db, log, domain.MaxBundleSize, domain.MaxChunkSize)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		closeAll := func() error {
			_ = repository.Close()
			return db.Close()
		}
		return local.NewTransport(repository, channel), closeAll, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", errors.ErrUnknownTransport, config.Transport)
	}
}
