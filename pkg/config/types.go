package config

import "time"

// Config is the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`

	// Dir is the directory relative seed patterns resolve against.
	// Load sets it to the config file's directory.
	Dir string `yaml:"-" json:"-"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `yaml:"address" json:"address"`
	ReadTimeout     time.Duration `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" json:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout"`
	MaxConnections  int           `yaml:"maxConnections" json:"maxConnections"`
	CORSOrigins     []string      `yaml:"corsOrigins,omitempty" json:"corsOrigins,omitempty"`
}

// LogConfig configures operational logging.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// CatalogConfig configures the record stores.
type CatalogConfig struct {
	IDStrategy       string   `yaml:"idStrategy" json:"idStrategy"`
	StrictReferences bool     `yaml:"strictReferences" json:"strictReferences"`
	SeedDefault      bool     `yaml:"seedDefault" json:"seedDefault"`
	SeedFiles        []string `yaml:"seedFiles,omitempty" json:"seedFiles,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":4280",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Catalog: CatalogConfig{
			IDStrategy:  "sequence",
			SeedDefault: true,
		},
		Dir: ".",
	}
}
