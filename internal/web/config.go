package web

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration. It is read from the environment so the
// server can run in a container without a config file; command line flags
// override it.
type Config struct {
	Addr            string        `env:"AMORACTL_SERVE_ADDR"             envDefault:":8080"`
	SiteName        string        `env:"AMORACTL_SERVE_SITE_NAME"        envDefault:"Amora"`
	ReadTimeout     time.Duration `env:"AMORACTL_SERVE_READ_TIMEOUT"     envDefault:"10s"`
	WriteTimeout    time.Duration `env:"AMORACTL_SERVE_WRITE_TIMEOUT"    envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"AMORACTL_SERVE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	// MaxFormBytes caps the size of a submitted form.
	MaxFormBytes int64 `env:"AMORACTL_SERVE_MAX_FORM_BYTES" envDefault:"16384"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
