package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// SERVER_ADDR of a running channel server, the suite is skipped when empty
	ServerAddr string `envconfig:"SERVER_ADDR"`
	Token      string `envconfig:"E2E_TOKEN"`
	ChannelID  uint64 `envconfig:"E2E_CHANNEL_ID" default:"1"`
	// E2E_DEBUG_JSON dumps request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_FILE_SIZE is the size of the uploaded random file
	FileSize int `envconfig:"E2E_FILE_SIZE" default:"20971520"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
