// Package config loads application settings from environment variables into
// tagged structs.
//
// It wraps `github.com/joho/godotenv` for `.env` files and
// `github.com/caarlos0/env/v11` for struct parsing:
//
//	type Settings struct {
//	    LogLevel  string `env:"RULECHECK_LOG_LEVEL" envDefault:"info"`
//	    LogFormat string `env:"RULECHECK_LOG_FORMAT" envDefault:"text"`
//	}
//
//	var s Settings
//	if err := config.Load(&s, "./config/.env"); err != nil {
//	    log.Fatalf("loading config: %v", err)
//	}
//
// # Error Handling
//
// Errors wrap the sentinels ErrParsingConfig, ErrLoadingEnvFile and
// ErrNilPointer; compare with errors.Is.
package config
