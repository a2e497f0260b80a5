package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Classifier ClassifierConfig `mapstructure:"classifier" validate:"required"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Session    SessionConfig    `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains the profile store connection settings. An empty URL
// selects the in-memory profile store.
type DatabaseConfig struct {
	URL         string `mapstructure:"url" validate:"omitempty,url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// ClassifierConfig contains the handwriting classifier settings.
type ClassifierConfig struct {
	GeminiAPIKey       string        `mapstructure:"gemini_api_key" validate:"required"`
	ModelName          string        `mapstructure:"model_name" validate:"required"`
	PromptTemplatePath string        `mapstructure:"prompt_template_path"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// AudioConfig contains the pronunciation player settings.
type AudioConfig struct {
	SyllableDir string `mapstructure:"syllable_dir"`
	TTSEnabled  bool   `mapstructure:"tts_enabled"`
	TTSBaseURL  string `mapstructure:"tts_base_url" validate:"omitempty,url"`
	TTSLanguage string `mapstructure:"tts_language" validate:"required"`
}

// SessionConfig contains the practice session timing and canvas defaults.
type SessionConfig struct {
	AudioDelay   time.Duration `mapstructure:"audio_delay" validate:"gte=0"`
	CorrectDelay time.Duration `mapstructure:"correct_delay" validate:"gt=0"`
	WrongDelay   time.Duration `mapstructure:"wrong_delay" validate:"gt=0"`
	CanvasWidth  float64       `mapstructure:"canvas_width" validate:"gt=0"`
	CanvasHeight float64       `mapstructure:"canvas_height" validate:"gt=0"`
	PixelRatio   float64       `mapstructure:"pixel_ratio" validate:"gt=0"`
	MaxSessions  int           `mapstructure:"max_sessions" validate:"gt=0"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	SweepSpec    string        `mapstructure:"sweep_spec" validate:"required"`
}
