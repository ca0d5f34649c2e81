package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds process settings. Provider settings are not here; they live
// encrypted in the synced store.
type Config struct {
	DBPath      string        `env:"C3PO_DB_PATH" envDefault:"data/c3po.db"`
	LogLevel    string        `env:"C3PO_LOG_LEVEL" envDefault:"info"`
	LLMDriver   string        `env:"C3PO_LLM_DRIVER" envDefault:"resty"`
	HTTPTimeout time.Duration `env:"C3PO_HTTP_TIMEOUT" envDefault:"0s"`
	// Passphrase switches the config blob to passphrase sealing. It is never persisted.
	Passphrase string `env:"C3PO_CONFIG_PASSPHRASE"`
	UseKeyring bool   `env:"C3PO_USE_KEYRING" envDefault:"false"`
}

// Load reads the given .env files (missing ones are skipped) and then the environment.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Exists reports whether path is a readable file; used to pick a default .env.
func Exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
