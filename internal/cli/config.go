package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// savedToken is the token file layout. The token is only reused against the
// server that issued it, and not after it expires.
type savedToken struct {
	Server    string    `yaml:"server"`
	Token     string    `yaml:"token"`
	ExpiresAt time.Time `yaml:"expires_at,omitempty"`
}

// DefaultConfig returns a Config from the CWL_* environment
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("CWL_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("CWL_TOKEN"),
		TokenFile: getEnvOrDefault("CWL_TOKEN_FILE", defaultTokenFile()),
		Output:    getEnvOrDefault("CWL_OUTPUT", "text"),
	}
}

// LoadToken reads the saved admin token unless one was given explicitly.
// Tokens saved for another server or already expired are ignored.
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var saved savedToken
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("token file %s: %w", c.TokenFile, err)
	}
	if !sameServer(saved.Server, c.ServerURL) {
		return nil
	}
	if !saved.ExpiresAt.IsZero() && time.Now().After(saved.ExpiresAt) {
		return nil
	}

	c.Token = saved.Token
	return nil
}

// SaveToken stores the token for the current server
func (c *Config) SaveToken(token string, expiresAt time.Time) error {
	c.Token = token

	data, err := yaml.Marshal(savedToken{Server: normalizeServer(c.ServerURL), Token: token, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.TokenFile, data, 0o600)
}

// ClearToken forgets the saved token
func (c *Config) ClearToken() error {
	c.Token = ""
	if err := os.Remove(c.TokenFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func sameServer(a, b string) bool {
	return normalizeServer(a) == normalizeServer(b)
}

func normalizeServer(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cwl", "token.yaml")
	}
	return filepath.Join(home, ".cwl", "token.yaml")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
