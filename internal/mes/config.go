package mes

import "time"

// Config holds the MES client settings.
type Config struct {
	BaseURL    string
	TimeoutMs  int
	MaxRetries int
	// RateLimit caps requests per second; 0 means unlimited.
	RateLimit float64
	// CacheTTL applies to lookup endpoints when a Redis client is attached.
	CacheTTL time.Duration
}

// DefaultConfig mirrors the mobile client: 30 s timeout, one retry.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:8080",
		TimeoutMs:  30000,
		MaxRetries: 1,
		CacheTTL:   5 * time.Minute,
	}
}

func (c Config) timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
