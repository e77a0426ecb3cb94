package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load populates v from the process environment using `env` struct tags.
//
// When envFiles is empty the default .env in the working directory is loaded
// if it exists. Otherwise every listed file must exist and later files win
// over earlier ones. Variables already set in the process environment take
// precedence over file values.
//
// Example:
//
//	type Settings struct {
//		LogLevel   string `env:"RULECHECK_LOG_LEVEL" envDefault:"info"`
//		CollectAll bool   `env:"RULECHECK_COLLECT_ALL"`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, envFiles ...string) error {
	if v == nil {
		return ErrNilPointer
	}

	if err := loadEnvFiles(envFiles...); err != nil {
		return err
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, envFiles ...string) {
	if err := Load(v, envFiles...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}

	// godotenv.Load never overrides set variables, so the first file wins;
	// reverse to give later files precedence.
	for i := len(files) - 1; i >= 0; i-- {
		if err := godotenv.Load(files[i]); err != nil {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", files[i], err))
		}
	}
	return nil
}
