// Package config loads configuration structs from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct with env tags and caches
//     the result per type, so later calls never re-parse.
//   - Global returns the process-wide form handler defaults (Config), read
//     from FORM_DB_CASE_STYLE, FORM_LOCALE, FORM_CONCURRENCY, FORM_LOG_LEVEL
//     and FORM_LOG_FORMAT.
//
// Connection settings of the existence check backends are loaded the same way:
//
//	var pg dbcheck.PostgresConfig
//	config.MustLoad(&pg)
//
// ResetCache and ForceReload exist for tests that change the environment.
package config
