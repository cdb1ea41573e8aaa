package config

// QualityTier controls the model selection and trade-off between speed/cost and quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderGoogle     ProviderType = "google"
	ProviderOllama     ProviderType = "ollama"
	ProviderMiniMax    ProviderType = "minimax"
	ProviderOpenRouter ProviderType = "openrouter"
)

// Config is the top-level themegen configuration, corresponding to .themegen.yml.
type Config struct {
	Provider  ProviderType `yaml:"provider" koanf:"provider"`
	Model     string       `yaml:"model" koanf:"model"`
	Quality   QualityTier  `yaml:"quality" koanf:"quality"`
	OutputDir string       `yaml:"output_dir" koanf:"output_dir"`
	DataDir   string       `yaml:"data_dir" koanf:"data_dir"`
	LogLevel  string       `yaml:"log_level" koanf:"log_level"`

	// MaxTokens caps the completion size. Three full documents are large.
	MaxTokens   int     `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature float64 `yaml:"temperature" koanf:"temperature"`
	// RequestsPerMinute enables the provider rate limiter when positive.
	RequestsPerMinute int `yaml:"requests_per_minute" koanf:"requests_per_minute"`

	Studio   StudioConfig   `yaml:"studio" koanf:"studio"`
	Progress ProgressConfig `yaml:"progress" koanf:"progress"`
}

// StudioConfig holds settings for the local preview server.
type StudioConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
	// MaxAttachmentMB bounds multipart uploads.
	MaxAttachmentMB int `yaml:"max_attachment_mb" koanf:"max_attachment_mb"`
}

// ProgressConfig holds settings for the loading simulator.
type ProgressConfig struct {
	// IntervalMS is the time between simulated steps.
	IntervalMS int `yaml:"interval_ms" koanf:"interval_ms"`
}
