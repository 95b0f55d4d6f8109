package ratelimit

import (
	"context"
	"time"
)

// Limiter bounds request volume per identity within a fixed window.
// Keys are "action:userId" strings built by the HTTP interceptor.
type Limiter interface {
	// Allow reports whether one more request under key fits the ceiling.
	Allow(ctx context.Context, key string) (bool, error)
}

// Conf selects and sizes the limiter implementation.
type Conf struct {
	Store   string        // memory or redis
	Ceiling int           // max requests per window
	Window  time.Duration // window length in seconds when read from config
	Prefix  string        // redis key prefix
}
