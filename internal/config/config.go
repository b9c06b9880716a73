package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Calculation CalculationConfig `mapstructure:"calculation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL runs the service without report persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// LLMConfig contains all LLM integration related settings.
// An empty API key disables report interpretation.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
	// PromptTemplatePath overrides the embedded interpretation prompt.
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds  int    `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`
	CacheSize          int    `mapstructure:"cache_size" validate:"gte=0"`
}

// Enabled reports whether interpretation is configured.
func (c LLMConfig) Enabled() bool {
	return c.GeminiAPIKey != ""
}

// CalculationConfig bounds batch report computation.
type CalculationConfig struct {
	BatchWorkers int `mapstructure:"batch_workers" validate:"gt=0,lte=64"`
	MaxBatchSize int `mapstructure:"max_batch_size" validate:"gt=0,lte=1000"`
}
