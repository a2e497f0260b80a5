package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for all environment variables read by Load.
const EnvPrefix = "HECE"

// setDefaults registers the default value of every key. Registering a
// default also makes viper bind the key to its environment variable.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("classifier.gemini_api_key", "")
	v.SetDefault("classifier.model_name", "gemini-2.5-flash")
	v.SetDefault("classifier.prompt_template_path", "")
	v.SetDefault("classifier.timeout", 20*time.Second)

	v.SetDefault("audio.syllable_dir", "assets/syllables")
	v.SetDefault("audio.tts_enabled", true)
	v.SetDefault("audio.tts_base_url", "https://translate.google.com/translate_tts")
	v.SetDefault("audio.tts_language", "tr")

	v.SetDefault("session.audio_delay", 500*time.Millisecond)
	v.SetDefault("session.correct_delay", 2500*time.Millisecond)
	v.SetDefault("session.wrong_delay", 1500*time.Millisecond)
	v.SetDefault("session.canvas_width", 400.0)
	v.SetDefault("session.canvas_height", 300.0)
	v.SetDefault("session.pixel_ratio", 1.0)
	v.SetDefault("session.max_sessions", 64)
	v.SetDefault("session.idle_timeout", 30*time.Minute)
	v.SetDefault("session.sweep_spec", "@every 1m")
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory, if present, is loaded into the
// environment first without overriding variables that are already set.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom behaves like Load but looks for config.yaml and .env in dir.
func LoadFrom(dir string) (*Config, error) {
	if err := godotenv.Load(dir + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
