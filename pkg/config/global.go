package config

import "sync"

// Config holds the process-wide defaults of form handlers.
// Handler options override them per instance.
type Config struct {
	// DBCaseStyle is the field naming of existence check queries: camel or snake.
	DBCaseStyle string `env:"FORM_DB_CASE_STYLE" envDefault:"camel"`
	// Locale is the BCP 47 tag used for number formatting and titleizing.
	Locale string `env:"FORM_LOCALE" envDefault:"en"`
	// Concurrency bounds the fields processed in parallel. 1 is sequential.
	Concurrency int `env:"FORM_CONCURRENCY" envDefault:"1"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `env:"FORM_LOG_LEVEL" envDefault:"info"`
	// LogFormat is json or text.
	LogFormat string `env:"FORM_LOG_FORMAT" envDefault:"json"`
}

// Defaults returns the configuration used when the environment sets nothing.
func Defaults() Config {
	return Config{
		DBCaseStyle: "camel",
		Locale:      "en",
		Concurrency: 1,
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

var (
	globalMu sync.Mutex
	global   *Config
)

// Global returns the process-wide Config. It is loaded from the
// environment on first use; a parse failure falls back to Defaults.
// The returned value is a copy.
func Global() Config {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		cfg := Defaults()
		if err := Load(&cfg); err != nil {
			cfg = Defaults()
		}
		if cfg.Concurrency < 1 {
			cfg.Concurrency = 1
		}
		global = &cfg
	}
	return *global
}
