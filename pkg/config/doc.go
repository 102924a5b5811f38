// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment
//     (the default .env in the working directory when no path is given).
//   - Load parses the environment into any struct annotated with env tags and
//     caches the result per type, so each configuration type is parsed once.
//   - MustLoad and MustLoadEnv panic on failure for startup-critical config.
//   - ResetCache and ForceReload exist for tests that change the environment.
//
// # Usage
//
//	type OverlayConfig struct {
//	    AnimationDuration time.Duration `env:"TOAST_ANIMATION_DURATION" envDefault:"400ms"`
//	}
//
//	var cfg OverlayConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// Any field type implementing encoding.TextUnmarshaler is parsed through it,
// which is how toastkit's precedence list and policy names are read.
//
// # Error Handling
//
// Sentinel errors can be compared with errors.Is:
//
//   - ErrParsingConfig  – failed to parse env vars into struct.
//   - ErrLoadingEnvFile – a .env file could not be read.
//   - ErrNilPointer     – nil pointer passed to Load or MustLoad.
package config
