package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml values like "15s" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logger   LoggerConfig   `yaml:"logger"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Notifier NotifierConfig `yaml:"notifier"`
	TextGen  TextGenConfig  `yaml:"textgen"`
	Reminder ReminderConfig `yaml:"reminder"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	BasePath        string        `yaml:"base_path"`
	Mode            string        `yaml:"mode"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	// Path is the SQLite file backing the durable key-value store.
	Path string `yaml:"path"`
}

type JWTConfig struct {
	Secret    string   `yaml:"secret"`
	ExpiresIn Duration `yaml:"expires_in"`
}

// NotifierConfig points at the external notification sink. An empty URL
// means notification permission was not granted and reminders are skipped.
type NotifierConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

// TextGenConfig points at the external text-generation service used for chat
// auto-replies. An empty URL disables the auto-reply path.
type TextGenConfig struct {
	URL     string   `yaml:"url"`
	APIKey  string   `yaml:"api_key"`
	Model   string   `yaml:"model"`
	Timeout Duration `yaml:"timeout"`
}

type ReminderConfig struct {
	Schedule string `yaml:"schedule"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            "8080",
			BasePath:        "/api",
			Mode:            "debug",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Logger:   LoggerConfig{Level: "info"},
		Database: DatabaseConfig{Path: "taskpro.db"},
		JWT:      JWTConfig{Secret: "dev-secret", ExpiresIn: Duration(24 * time.Hour)},
		Notifier: NotifierConfig{Timeout: Duration(5 * time.Second)},
		TextGen:  TextGenConfig{Model: "gemini-3-flash-preview", Timeout: Duration(30 * time.Second)},
		Reminder: ReminderConfig{Schedule: "@every 1m"},
	}

	// Load from yaml file if exists
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if basePath := os.Getenv("SERVER_BASE_PATH"); basePath != "" {
		cfg.Server.BasePath = basePath
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if expires := os.Getenv("JWT_EXPIRES_IN"); expires != "" {
		if d, err := time.ParseDuration(expires); err == nil {
			cfg.JWT.ExpiresIn = Duration(d)
		}
	}
	if url := os.Getenv("NOTIFIER_URL"); url != "" {
		cfg.Notifier.URL = url
	}
	if url := os.Getenv("TEXTGEN_URL"); url != "" {
		cfg.TextGen.URL = url
	}
	if key := os.Getenv("TEXTGEN_API_KEY"); key != "" {
		cfg.TextGen.APIKey = key
	}
	if model := os.Getenv("TEXTGEN_MODEL"); model != "" {
		cfg.TextGen.Model = model
	}
	if schedule := os.Getenv("REMINDER_SCHEDULE"); schedule != "" {
		cfg.Reminder.Schedule = schedule
	}
	if timeout := os.Getenv("NOTIFIER_TIMEOUT_SECONDS"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			cfg.Notifier.Timeout = Duration(time.Duration(n) * time.Second)
		}
	}

	return cfg, nil
}
