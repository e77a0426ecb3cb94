package main

// settings are read from the environment (and an optional .env file).
// Command-line flags override them.
type settings struct {
	LogLevel   string `env:"RULECHECK_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"RULECHECK_LOG_FORMAT" envDefault:"text"`
	CollectAll bool   `env:"RULECHECK_COLLECT_ALL" envDefault:"false"`
	Strict     bool   `env:"RULECHECK_STRICT" envDefault:"false"`
	ExtraRules bool   `env:"RULECHECK_EXTRA_RULES" envDefault:"true"`
	MessageKey string `env:"RULECHECK_MESSAGE_KEY" envDefault:"msg"`
}
