package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/lumiai/lumi-router/internal/provider/groq"
	"github.com/lumiai/lumi-router/internal/provider/ollama"
	"github.com/lumiai/lumi-router/internal/provider/openrouter"
	"github.com/lumiai/lumi-router/internal/provider/userkey"
	"github.com/lumiai/lumi-router/internal/ratelimit"
)

// Mode values for the APP_ENV flag. Development mode attaches raw upstream
// detail to error responses; production mode sanitizes them.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config represents the router configuration.
type Config struct {
	Mode       string `env:"APP_ENV" envDefault:"production"`
	Server     ServerConfig
	CORS       CORSConfig
	RateLimit  ratelimit.Config
	Router     RouterConfig
	Ollama     ollama.Config
	Groq       groq.Config
	OpenRouter openrouter.Config
	UserKey    userkey.Config
}

// Development reports whether verbose error detail should be exposed.
func (c *Config) Development() bool {
	return c.Mode == ModeDevelopment
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"60"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// RouterConfig contains dispatch settings.
type RouterConfig struct {
	UpstreamTimeout int `env:"UPSTREAM_TIMEOUT" envDefault:"30"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	Server     *ServerConfig
	CORS       *CORSConfig
	RateLimit  *ratelimit.Config
	Router     *RouterConfig
	Ollama     *ollama.Config
	Groq       *groq.Config
	OpenRouter *openrouter.Config
	UserKey    *userkey.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.RateLimit,
		&cfg.Router,
		&cfg.Ollama,
		&cfg.Groq,
		&cfg.OpenRouter,
		&cfg.UserKey,
	}
}
