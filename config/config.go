package config

import (
	"os"
	"time"

	"github.com/cbsinteractive/timecode-service/mediatime"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config is the configuration of the timecode service, read from the
// environment
type Config struct {
	DefaultFPS float64 `envconfig:"DEFAULT_FPS" default:"24"`
	HTTPPort   int     `envconfig:"HTTP_PORT" default:"8080"`
	SentryDSN  string  `envconfig:"SENTRY_DSN"`
	Env        string  `envconfig:"ENV" default:"dev"`

	Redis *Redis
	Log   *Log
}

// Redis holds the connection settings for timeline storage, read from
// REDIS_ADDR, REDIS_PASSWORD and so on. An empty address keeps timelines
// in memory.
type Redis struct {
	Addr     string        `envconfig:"ADDR"`
	Password string        `envconfig:"PASSWORD"`
	DB       int           `envconfig:"DB"`
	PoolSize int           `envconfig:"POOL_SIZE"`
	TTL      time.Duration `envconfig:"TTL" default:"720h"`
}

// Log configures the logrus logger from LOG_LEVEL and LOG_FORMAT
type Log struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (*Config, error) {
	cfg := Config{Redis: &Redis{}, Log: &Log{}}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "loading config from environment")
	}
	if !(cfg.DefaultFPS > 0) || cfg.DefaultFPS > mediatime.MaxFPS {
		return nil, errors.Errorf("DEFAULT_FPS must be in (0, %v], got %v", mediatime.MaxFPS, cfg.DefaultFPS)
	}
	return &cfg, nil
}

// Logger returns a logger writing to stderr at the configured level
func (l *Log) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parsing log level")
	}
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Level = level
	switch l.Format {
	case "json":
		logger.Formatter = &logrus.JSONFormatter{}
	case "text":
		logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	default:
		return nil, errors.Errorf("unknown log format %q", l.Format)
	}
	return logger, nil
}
