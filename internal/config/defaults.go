package config

// QualityPreset describes the model to use for a given quality tier.
type QualityPreset struct {
	Model string
}

// qualityPresets maps each provider+quality combination to its model choice.
var qualityPresets = map[ProviderType]map[QualityTier]QualityPreset{
	ProviderAnthropic: {
		QualityLite:   {Model: "claude-haiku-4-5-20251001"},
		QualityNormal: {Model: "claude-sonnet-4-5-20250929"},
		QualityMax:    {Model: "claude-opus-4-6"},
	},
	ProviderOpenAI: {
		QualityLite:   {Model: "gpt-4o-mini"},
		QualityNormal: {Model: "gpt-4o"},
		QualityMax:    {Model: "gpt-4"},
	},
	ProviderGoogle: {
		QualityLite:   {Model: "gemini-2.0-flash"},
		QualityNormal: {Model: "gemini-2.5-flash"},
		QualityMax:    {Model: "gemini-2.5-pro"},
	},
	ProviderOllama: {
		QualityLite:   {Model: "llama3"},
		QualityNormal: {Model: "llama3"},
		QualityMax:    {Model: "llama3:70b"},
	},
	ProviderMiniMax: {
		QualityLite:   {Model: "MiniMax-M2.5-highspeed"},
		QualityNormal: {Model: "MiniMax-M2.5"},
		QualityMax:    {Model: "MiniMax-M2.5"},
	},
	ProviderOpenRouter: {
		QualityLite:   {Model: "google/gemini-2.0-flash-001"},
		QualityNormal: {Model: "google/gemini-2.5-flash"},
		QualityMax:    {Model: "google/gemini-2.5-pro"},
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGoogle,
		Model:             "gemini-2.5-flash",
		Quality:           QualityNormal,
		OutputDir:         "designs",
		DataDir:           ".themegen",
		LogLevel:          "info",
		MaxTokens:         32768,
		Temperature:       0.8,
		RequestsPerMinute: 0,
		Studio: StudioConfig{
			Port:            8080,
			AllowAll:        false,
			MaxAttachmentMB: 10,
		},
		Progress: ProgressConfig{
			IntervalMS: 2000,
		},
	}
}

// GetPreset returns the quality preset for the given provider and tier.
// Returns the Normal Google preset if the combination is not found.
func GetPreset(provider ProviderType, tier QualityTier) QualityPreset {
	if tiers, ok := qualityPresets[provider]; ok {
		if preset, ok := tiers[tier]; ok {
			return preset
		}
	}
	return qualityPresets[ProviderGoogle][QualityNormal]
}
