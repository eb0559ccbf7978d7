package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values load lowest priority
// first: defaults, then the optional YAML file, then environment variables.
type Config struct {
	ServerAddress string `yaml:"server_address" validate:"required"`
	Environment   string `yaml:"environment" validate:"oneof=development staging production"`
	LogLevel      string `yaml:"log_level"`
	StaticDir     string `yaml:"static_dir"`

	Dataset Dataset `yaml:"dataset"`
	Buffer  Buffer  `yaml:"buffer"`
	Storage Storage `yaml:"storage" validate:"required"`
	OpenAI  OpenAI  `yaml:"openai"`
	CORS    CORS    `yaml:"cors"`
}

// Dataset configures the startup discussion dataset.
type Dataset struct {
	// Path of the CSV loaded at boot when present.
	Path string `yaml:"path"`
	// Watch rebuilds the graph when the file changes.
	Watch bool `yaml:"watch"`
}

// Buffer configures the activity delivery buffer.
type Buffer struct {
	MaxSize       int           `yaml:"max_size" validate:"min=1"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	SinkURL       string        `yaml:"sink_url" validate:"required,url"`
}

// Storage configures the file persistence layer.
type Storage struct {
	DataDir     string `yaml:"data_dir" validate:"required"`
	EventLog    string `yaml:"event_log"`
	NetworkFile string `yaml:"network_file"`
}

// OpenAI configures the chat-completion collaborator.
type OpenAI struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	Model     string        `yaml:"model" validate:"required"`
	MaxTokens int           `yaml:"max_tokens" validate:"min=1"`
	Timeout   time.Duration `yaml:"timeout"`
	// APIKey is only ever read from the environment.
	APIKey string `yaml:"-"`
}

// CORS configures cross-origin access for the frontend.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadConfig loads configuration from defaults, an optional YAML file
// (CONFIG_FILE, falling back to ./config.yaml) and environment variables,
// then validates the result.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	path := getEnv("CONFIG_FILE", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	applyEnvironment(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress: ":8080",
		Environment:   "development",
		LogLevel:      "info",

		Dataset: Dataset{
			Path:  "data/synthesisAI_testing_data.csv",
			Watch: true,
		},
		Buffer: Buffer{
			MaxSize:       25,
			FlushInterval: 10 * time.Second,
			SinkURL:       "http://localhost:8080/api/events",
		},
		Storage: Storage{
			DataDir:     "data",
			EventLog:    "interaction_log.ndjson",
			NetworkFile: "network.json",
		},
		OpenAI: OpenAI{
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-3.5-turbo",
			MaxTokens: 256,
			Timeout:   30 * time.Second,
		},
		CORS: CORS{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// applyEnvironment overlays environment variables, the highest priority
// configuration source.
func applyEnvironment(cfg *Config) {
	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)

	cfg.Dataset.Path = getEnv("DATASET_PATH", cfg.Dataset.Path)
	if v := os.Getenv("DATASET_WATCH"); v != "" {
		cfg.Dataset.Watch = parseBool(v)
	}

	cfg.Buffer.MaxSize = getEnvInt("BUFFER_MAX_SIZE", cfg.Buffer.MaxSize)
	if ms := getEnvInt("FLUSH_INTERVAL_MS", 0); ms > 0 {
		cfg.Buffer.FlushInterval = time.Duration(ms) * time.Millisecond
	}
	cfg.Buffer.SinkURL = getEnv("EVENT_SINK_URL", cfg.Buffer.SinkURL)

	cfg.Storage.DataDir = getEnv("DATA_DIR", cfg.Storage.DataDir)

	cfg.OpenAI.BaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAI.BaseURL)
	cfg.OpenAI.Model = getEnv("OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.MaxTokens = getEnvInt("OPENAI_MAX_TOKENS", cfg.OpenAI.MaxTokens)
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func parseBool(s string) bool {
	val, _ := strconv.ParseBool(s)
	return val
}
