package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formhandler/pkg/config"
)

type fileConfig struct {
	Name     string   `env:"FORMTEST_NAME"`
	Count    int      `env:"FORMTEST_COUNT"`
	Tags     []string `env:"FORMTEST_TAGS" envSeparator:","`
	Quoted   string   `env:"FORMTEST_QUOTED"`
	Override string   `env:"FORMTEST_ONLY_OVERRIDE"`
}

type requiredConfig struct {
	Value string `env:"FORMTEST_REQUIRED,required"`
}

type cachedConfig struct {
	Value string `env:"FORMTEST_CACHED" envDefault:"default"`
}

// Tests in this file touch the process environment and must not run in parallel.

func TestLoadEnv(t *testing.T) {
	for _, k := range []string{"FORMTEST_NAME", "FORMTEST_COUNT", "FORMTEST_TAGS", "FORMTEST_QUOTED", "FORMTEST_ONLY_OVERRIDE"} {
		t.Setenv(k, "")
	}

	t.Run("single file", func(t *testing.T) {
		config.ResetCache()
		require.NoError(t, config.LoadEnv("testdata/.env.custom"))

		var cfg fileConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "custom", cfg.Name)
		assert.Equal(t, 12, cfg.Count)
		assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
		assert.Equal(t, "quoted value", cfg.Quoted)
	})

	t.Run("later files override", func(t *testing.T) {
		config.ResetCache()
		require.NoError(t, config.LoadEnv("testdata/.env.custom", "testdata/.env.override"))

		var cfg fileConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "override", cfg.Name)
		assert.Equal(t, 12, cfg.Count)
		assert.Equal(t, "yes", cfg.Override)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv("testdata/missing.env")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
		assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
	})
}

func TestLoad(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		var cfg *cachedConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("FORMTEST_CACHED", "first")

		var a cachedConfig
		require.NoError(t, config.Load(&a))
		assert.Equal(t, "first", a.Value)

		t.Setenv("FORMTEST_CACHED", "second")
		var b cachedConfig
		require.NoError(t, config.Load(&b))
		assert.Equal(t, "first", b.Value)

		var c cachedConfig
		require.NoError(t, config.ForceReload(&c))
		assert.Equal(t, "second", c.Value)
	})

	t.Run("required value", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("FORMTEST_REQUIRED", "")
		require.NoError(t, os.Unsetenv("FORMTEST_REQUIRED"))

		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })

		t.Setenv("FORMTEST_REQUIRED", "set")
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "set", cfg.Value)
	})
}

func TestGlobal(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"FORM_DB_CASE_STYLE", "FORM_LOCALE", "FORM_CONCURRENCY", "FORM_LOG_LEVEL", "FORM_LOG_FORMAT"} {
			t.Setenv(k, "")
		}
		config.ResetCache()
		assert.Equal(t, config.Defaults(), config.Global())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("FORM_DB_CASE_STYLE", "snake")
		t.Setenv("FORM_LOCALE", "de")
		t.Setenv("FORM_CONCURRENCY", "4")
		t.Setenv("FORM_LOG_LEVEL", "debug")
		t.Setenv("FORM_LOG_FORMAT", "text")
		config.ResetCache()

		cfg := config.Global()
		assert.Equal(t, "snake", cfg.DBCaseStyle)
		assert.Equal(t, "de", cfg.Locale)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)

		t.Setenv("FORM_LOCALE", "fr")
		assert.Equal(t, "de", config.Global().Locale)
	})

	t.Run("invalid concurrency falls back", func(t *testing.T) {
		t.Setenv("FORM_CONCURRENCY", "many")
		config.ResetCache()
		assert.Equal(t, 1, config.Global().Concurrency)
	})

	config.ResetCache()
}
