package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the settings that may be overridden from the
// environment. Unset variables leave the file value in place.
type envOverrides struct {
	APIURL     string        `env:"KICKS_API_URL"`
	APITimeout time.Duration `env:"KICKS_API_TIMEOUT"`
	UserID     string        `env:"KICKS_USER_ID"`
	DataDir    string        `env:"KICKS_DATA_DIR"`
	LogLevel   string        `env:"KICKS_LOG_LEVEL"`
	ZeroMode   string        `env:"KICKS_ZERO_MODE"`
}

// ApplyEnv overlays KICKS_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.APIURL != "" {
		cfg.API.BaseURL = o.APIURL
	}
	if o.APITimeout > 0 {
		cfg.API.Timeout = Duration(o.APITimeout)
	}
	if o.UserID != "" {
		cfg.User.ID = o.UserID
	}
	if o.DataDir != "" {
		cfg.Storage.DataDir = o.DataDir
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.ZeroMode != "" {
		cfg.Display.ZeroMode = o.ZeroMode
	}
	return nil
}
