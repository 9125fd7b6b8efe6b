// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
)

// EnvFile is the optional environment file read from the working directory.
const EnvFile = ".env"

// Environment variables providing flag defaults.
const (
	EnvOutput = "SV2WIZARD_OUTPUT"
	EnvAddr   = "SV2WIZARD_ADDR"
)

var logger = logr.Discard()

// SetLogger sets the logger used by all handlers.
func SetLogger(l logr.Logger) {
	logger = l
}

// LoadEnv loads path into the environment. Variables that are already set
// win, and a missing file is not an error.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		logger.V(1).Info("loaded environment file", "path", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// envOr returns the value of key, or def when it is unset or empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
