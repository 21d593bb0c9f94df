// Package config provides type-safe environment variable loading with
// per-type caching using Go generics.
//
// Variables are parsed with the caarlos0/env library; a .env file in the
// working directory is loaded automatically on first use via godotenv.
//
// Basic usage:
//
//	import "github.com/dollro/authclient/core/config"
//
//	type APIConfig struct {
//		BaseURL string        `env:"AUTH_API_BASE_URL,required"`
//		Timeout time.Duration `env:"AUTH_API_TIMEOUT" envDefault:"30s"`
//	}
//
//	func main() {
//		var cfg APIConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//		// Or panic on failure during startup:
//		config.MustLoad(&cfg)
//	}
//
// Each configuration type is loaded once per process lifetime; repeated calls
// for the same type return the cached value, so independent packages can load
// their configuration without coordinating.
package config
