package redis

import "time"

// Config holds the Redis connection and message history settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	PoolSize     int
	MinIdleConns int

	// DialTimeout bounds the startup ping
	DialTimeout time.Duration

	// KeyPrefix namespaces every key, so several clan families can share one Redis
	KeyPrefix string

	// MaxMessages caps the stored message history; 0 keeps everything
	MaxMessages int64
}

// DefaultConfig returns the settings used when only the URL is configured
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		KeyPrefix:    "cwl",
		MaxMessages:  100,
	}
}
