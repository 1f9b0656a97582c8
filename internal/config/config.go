// Package config loads the server configuration from defaults, an optional
// YAML file, an optional .env file and CWL_* environment variables, in
// increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// StorageTypes lists the accepted storage backends
var StorageTypes = []string{StorageMemory, StorageSQLite, StorageRedis}

// Environment variables that locate the other configuration sources
const (
	EnvConfigFile = "CWL_CONFIG_FILE"
	EnvEnvFile    = "CWL_ENV_FILE"
)

// Config is the complete server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Admin   AdminConfig   `yaml:"admin"`
	Clash   ClashConfig   `yaml:"clash"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StorageConfig struct {
	Type    string `yaml:"type"`
	DataDir string `yaml:"data_dir"`
	// SQLitePath defaults to cwl.db inside DataDir
	SQLitePath string `yaml:"sqlite_path"`
	// RegistrationsFile is the plain-text registration mirror; empty disables it
	RegistrationsFile string `yaml:"registrations_file"`
	// ClanConfigFile is the JSON copy of the clan configuration; empty disables it
	ClanConfigFile   string `yaml:"clan_config_file"`
	RedisURL         string `yaml:"redis_url"`
	RedisKeyPrefix   string `yaml:"redis_key_prefix"`
	RedisMaxMessages int64  `yaml:"redis_max_messages"`
}

type AdminConfig struct {
	Password        string        `yaml:"password"`
	PasswordHash    string        `yaml:"password_hash"`
	SessionDuration time.Duration `yaml:"session_duration"`
}

type ClashConfig struct {
	BaseURL           string        `yaml:"base_url"`
	APIKey            string        `yaml:"api_key"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Storage: StorageConfig{
			Type:              StorageSQLite,
			DataDir:           "data",
			RegistrationsFile: "listaIscrizioni.txt",
			ClanConfigFile:    "clan-config.json",
			RedisKeyPrefix:    "cwl",
			RedisMaxMessages:  100,
		},
		Admin: AdminConfig{
			Password:        "ClanWarMaker",
			SessionDuration: 24 * time.Hour,
		},
		Clash: ClashConfig{
			BaseURL:           "https://api.clashofclans.com/v1",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
		},
	}
}

// Load builds the configuration. configFile and envFile may be empty; a
// missing envFile is ignored, a missing configFile is an error.
func Load(configFile, envFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if envFile != "" {
		// Variables already in the environment win over the file
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnvironment loads the configuration using CWL_CONFIG_FILE and
// CWL_ENV_FILE (default ".env") to locate the files
func FromEnvironment() (*Config, error) {
	envFile := ".env"
	if v, ok := os.LookupEnv(EnvEnvFile); ok {
		envFile = v
	}
	return Load(os.Getenv(EnvConfigFile), envFile)
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Server.Host, "CWL_HOST")
	setString(&c.Log.Level, "CWL_LOG_LEVEL")
	setString(&c.Storage.Type, "CWL_STORAGE_TYPE")
	setString(&c.Storage.DataDir, "CWL_DATA_DIR")
	setString(&c.Storage.SQLitePath, "CWL_SQLITE_PATH")
	setString(&c.Storage.RegistrationsFile, "CWL_REGISTRATIONS_FILE")
	setString(&c.Storage.ClanConfigFile, "CWL_CLAN_CONFIG_FILE")
	setString(&c.Storage.RedisURL, "CWL_REDIS_URL")
	setString(&c.Storage.RedisKeyPrefix, "CWL_REDIS_KEY_PREFIX")
	setString(&c.Admin.Password, "CWL_ADMIN_PASSWORD")
	setString(&c.Admin.PasswordHash, "CWL_ADMIN_PASSWORD_HASH")
	setString(&c.Clash.BaseURL, "CWL_CLASH_API_URL")

	// Clash API key: first non-empty in priority order
	for _, key := range []string{"CWL_CLASH_API_KEY", "CLASH_API_KEY", "COC_API_KEY", "CLASH_API_KEY_2"} {
		if v := os.Getenv(key); v != "" {
			c.Clash.APIKey = v
			break
		}
	}

	if v, ok := os.LookupEnv("CWL_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CWL_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := os.LookupEnv("CWL_SESSION_DURATION"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CWL_SESSION_DURATION %q: %w", v, err)
		}
		c.Admin.SessionDuration = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(StorageTypes, c.Storage.Type) {
		problems = append(problems, fmt.Sprintf("invalid storage type %q (valid: %v)", c.Storage.Type, StorageTypes))
	}
	if c.Storage.Type == StorageRedis && c.Storage.RedisURL == "" {
		problems = append(problems, "redis_url is required when storage type is redis")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d", c.Server.Port))
	}
	if _, err := c.LogLevel(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		problems = append(problems, "an admin password or password hash is required")
	}
	if c.Admin.SessionDuration <= 0 {
		problems = append(problems, "session_duration must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return level, nil
}

// SQLitePath returns the database file location
func (c *Config) SQLitePath() string {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath
	}
	return filepath.Join(c.Storage.DataDir, "cwl.db")
}

// RegistrationsPath returns the registration mirror location, or "" when disabled
func (c *Config) RegistrationsPath() string {
	return c.dataPath(c.Storage.RegistrationsFile)
}

// ClanConfigPath returns the clan configuration copy location, or "" when disabled
func (c *Config) ClanConfigPath() string {
	return c.dataPath(c.Storage.ClanConfigFile)
}

func (c *Config) dataPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Storage.DataDir, name)
}
