package config

import "github.com/caarlos0/env/v11"

// Config holds the server's environment-driven settings
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Roster bounds enforced on sessions
	MinParticipants        int `env:"MIN_PARTICIPANTS" envDefault:"2"`
	MaxParticipantsLimit   int `env:"MAX_PARTICIPANTS_LIMIT" envDefault:"8"`
	DefaultMaxParticipants int `env:"DEFAULT_MAX_PARTICIPANTS" envDefault:"4"`

	// Settlement parameters
	PointValueMinorUnits int64  `env:"POINT_VALUE_MINOR_UNITS" envDefault:"5000"`
	PaymentDirection     string `env:"PAYMENT_DIRECTION" envDefault:"previous_pays_next"`

	ShutdownTimeoutSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`
}

// LogConfig holds logging settings, loaded separately so logging can
// come up before the rest of the config is validated
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

func Load() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}
