package internal

import "time"

// ServerConfig drives the channel server and the inspect tool.
type ServerConfig struct {
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=720h"`
}
