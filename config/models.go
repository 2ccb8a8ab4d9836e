package config

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	NLP      NLPConfig      `mapstructure:"nlp"`
	FAERS    FAERSConfig    `mapstructure:"faers"`
	ML       MLConfig       `mapstructure:"ml"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// NLPConfig points at the external medical entity extraction service.
// When ServerURL is empty the analyze endpoint only accepts pre-extracted
// entities.
type NLPConfig struct {
	ServerURL string `mapstructure:"server_url"`
}

// FAERSConfig configures the adverse event registry client and the
// correlation engine that fans out over it.
type FAERSConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
	CacheSize      int    `mapstructure:"cache_size"`
}

// MLConfig configures the optional pretrained risk classifier.
type MLConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	ModelPath string `mapstructure:"model_path"`
}

type AnalysisConfig struct {
	MinConfidence float64 `mapstructure:"min_confidence"`
}
