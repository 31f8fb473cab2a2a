package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Marvel   MarvelConfig   `mapstructure:"marvel" validate:"required"`
	Catalog  CatalogConfig  `mapstructure:"catalog" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// MarvelConfig contains the character catalog provider settings.
// PrivateKey is optional; without it requests use the unauthenticated tier.
type MarvelConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	PublicKey      string `mapstructure:"public_key"`
	PrivateKey     string `mapstructure:"private_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
	Limit          int    `mapstructure:"limit" validate:"gt=0,lte=100"`
}

// CatalogConfig controls how long a cached catalog is served before the
// provider is asked again.
type CatalogConfig struct {
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL disables the catalog cache and the session event log.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	SessionSecret        string `mapstructure:"session_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
// Trivia enrichment is disabled when GeminiAPIKey is empty.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name" validate:"required_with=GeminiAPIKey"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1"`
}

// SessionConfig contains quiz session behaviour settings.
type SessionConfig struct {
	FeedbackDelaySeconds int `mapstructure:"feedback_delay_seconds" validate:"gte=0"`
}

// TaskConfig contains background work settings.
type TaskConfig struct {
	// WorkerCount bounds concurrent trivia generation requests.
	WorkerCount int `mapstructure:"worker_count" validate:"gte=1,lte=32"`
}
