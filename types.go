package session

import (
	"fmt"
	"time"
)

// DefaultStorageKey is the name of the persisted session slot.
const DefaultStorageKey = "user"

// DefaultLoginDelay simulates the latency of the portal's backend during
// Login. It is a design constant; Config can shorten it for tests but the
// store never exposes it to end users.
const DefaultLoginDelay = 500 * time.Millisecond

// DefaultLoginRoute is the login entry point the guard redirects to.
const DefaultLoginRoute = "/login"

// DefaultHomeRoute is where the controller sends users after sign-in.
const DefaultHomeRoute = "/"

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds session options
type Config interface {
	GetStorageKey() string
	GetSigningKey() string
	GetLoginDelay() time.Duration
	GetLoginRoute() string
	GetHomeRoute() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

func loginDelay(cfg Config) time.Duration {
	if cfg == nil || cfg.GetLoginDelay() <= 0 {
		return DefaultLoginDelay
	}
	return cfg.GetLoginDelay()
}

func loginRoute(cfg Config) string {
	if cfg == nil || cfg.GetLoginRoute() == "" {
		return DefaultLoginRoute
	}
	return cfg.GetLoginRoute()
}

func homeRoute(cfg Config) string {
	if cfg == nil || cfg.GetHomeRoute() == "" {
		return DefaultHomeRoute
	}
	return cfg.GetHomeRoute()
}
