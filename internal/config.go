package internal

import (
	"chat-fs/domain"
	"chat-fs/errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	TransportDiscord = "discord"
	TransportGRPC    = "grpc"
	TransportLocal   = "local"
)

// Config drives the command line client.
type Config struct {
	Transport        string        `env:"TRANSPORT,default=discord" validate:"oneof=discord grpc local"`
	Token            string        `env:"DISCORD_FS_TOKEN" validate:"required_unless=Transport local"`
	ChannelID        string        `env:"DISCORD_FS_CHANNEL_ID,required=true" validate:"required,number"`
	DiscordAPIURL    string        `env:"DISCORD_API_URL,default=https://discord.com/api/v10" validate:"url"`
	ServerAddr       string        `env:"SERVER_ADDR,default=localhost:8080" validate:"required_if=Transport grpc"`
	BadgerFilepath   string        `env:"BADGER_FILEPATH" validate:"required_if=Transport local"`
	WorkDir          string        `env:"WORK_DIR,default=chatfs_work" validate:"required"`
	OutputDir        string        `env:"OUTPUT_DIR,default=." validate:"required"`
	LogLevel         string        `env:"LOG_LEVEL,default=WARN"`
	TransportTimeout time.Duration `env:"TRANSPORT_TIMEOUT,default=60s" validate:"gte=0"`
	MaxChainLength   int           `env:"MAX_CHAIN_LENGTH,default=0" validate:"gte=0"`
}

// LoadConfig reads an optional .env file then the environment.
func LoadConfig() (Config, error) {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	return nil
}

// Channel is the destination every transport is bound to.
func (c Config) Channel() (domain.ChannelID, error) {
	id, err := strconv.ParseUint(c.ChannelID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: DISCORD_FS_CHANNEL_ID %q", errors.ErrInvalidConfig, c.ChannelID)
	}
	return domain.ChannelID(id), nil
}
