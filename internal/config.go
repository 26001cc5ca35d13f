package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	Host               string        `env:"HOST,default=0.0.0.0"`
	Port               int           `env:"PORT,default=8080"`
	LogLevel           string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath     string        `env:"BADGER_FILEPATH,required=true"`
	EventsDSN          string        `env:"EVENTS_DSN,required=true"`
	StoreTimeout       time.Duration `env:"STORE_TIMEOUT,default=5s"`
	TxnMaxBackoff      time.Duration `env:"TXN_MAX_BACKOFF,default=10ms"`
	AllowedOrigins     string        `env:"ALLOWED_ORIGINS,default=*"`
	ReadTimeout        time.Duration `env:"READ_TIMEOUT,default=10s"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	DebugInspectorPort *int          `env:"DEBUG_INSPECTOR_PORT"`
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	case c.StoreTimeout <= 0:
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.StoreTimeout)
	case c.TxnMaxBackoff <= 0 || c.TxnMaxBackoff >= c.StoreTimeout:
		return fmt.Errorf("TXN_MAX_BACKOFF must be positive and below STORE_TIMEOUT, got %s", c.TxnMaxBackoff)
	case c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0:
		return fmt.Errorf("READ_TIMEOUT, WRITE_TIMEOUT and SHUTDOWN_TIMEOUT must be positive")
	case len(c.Origins()) == 0:
		return fmt.Errorf("ALLOWED_ORIGINS must name at least one origin")
	}
	return nil
}

// Origins splits the comma separated ALLOWED_ORIGINS value.
func (c Config) Origins() []string {
	origins := lo.Map(strings.Split(c.AllowedOrigins, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	})
	return lo.Compact(origins)
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
