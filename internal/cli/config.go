package cli

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables that provide flag defaults.
const (
	EnvBackend = "SPMAT_BACKEND"
	EnvFormat  = "SPMAT_FORMAT"
)

// Built-in defaults used when neither a flag nor the environment sets a value.
const (
	DefaultBackend = "csr"
	DefaultFormat  = "text"
)

// loadEnvFile looks for a .env file in the working directory and up to four
// parents and loads the first one found. Variables already set in the process
// environment win over the file.
func loadEnvFile() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil
}

// envOr returns the value of key, or fallback when unset or empty.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
