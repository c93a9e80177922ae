package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Speech   SpeechConfig   `mapstructure:"speech"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// SpeechConfig contains the text-to-speech provider settings. Keys are
// optional: a provider without a key is left out of the synthesis
// chain.
type SpeechConfig struct {
	// GoogleAPIKey authorizes the Google Cloud TTS REST endpoint.
	GoogleAPIKey string `mapstructure:"google_api_key"`

	// SarvamAPIKey authorizes the Sarvam AI TTS endpoint, used as a
	// fallback for Indic languages.
	SarvamAPIKey string `mapstructure:"sarvam_api_key"`

	// Voice selects the default voice for synthesized word audio.
	Voice string `mapstructure:"voice"`

	// CacheSize bounds the number of synthesized clips kept in memory.
	CacheSize int `mapstructure:"cache_size" validate:"gte=0"`
}
