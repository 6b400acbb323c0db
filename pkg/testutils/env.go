package testutils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/joho/godotenv"
)

const (
	ENV_TEST_POSTGRES_DSN = "RESOURCEHUB_TEST_POSTGRES_DSN"
	ENV_TEST_REDIS_ADDR   = "RESOURCEHUB_TEST_REDIS_ADDR"
	ENV_TEST_S3_ENDPOINT  = "RESOURCEHUB_TEST_S3_ENDPOINT"
)

// LoadEnv loads the .env file from the project root directory, if present.
func LoadEnv() error {
	_, filename, _, _ := runtime.Caller(0)
	envPath := filepath.Join(filepath.Dir(filename), "..", "..", ".env")

	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(envPath)
}

// LoadEnvOrPanic loads the .env file and panics if there's an error
func LoadEnvOrPanic() {
	if err := LoadEnv(); err != nil {
		panic("Failed to load .env file: " + err.Error())
	}
}

// GetEnvOrDefault gets an environment variable with a default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// RequireEnv returns the value of key or skips the test when it is unset.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	LoadEnvOrPanic()
	v := os.Getenv(key)
	if v == "" {
		t.Skipf("%s is not set", key)
	}
	return v
}
