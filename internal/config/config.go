package config

import (
	"fmt"
	"time"

	"github.com/kubev2v/taskpool/pkg/scheduler"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Scheduler Server Auth

type Configuration struct {
	Scheduler  Scheduler `debugmap:"visible"`
	Server     Server    `debugmap:"visible"`
	Auth       Auth      `debugmap:"visible"`
	DataFolder string    `debugmap:"visible"`
	LogFormat  string    `debugmap:"visible" default:"console"`
	LogLevel   string    `debugmap:"visible" default:"info"`
}

type Scheduler struct {
	Workers       int           `debugmap:"visible" default:"0"`
	Verbose       bool          `debugmap:"visible" default:"false"`
	RetryAttempts uint          `debugmap:"visible" default:"3"`
	RetryInitial  time.Duration `debugmap:"visible" default:"200ms"`
	RetryMax      time.Duration `debugmap:"visible" default:"5s"`
}

type Server struct {
	ControlPlane bool   `debugmap:"visible" default:"false"`
	HTTPPort     int    `debugmap:"visible" default:"8000"`
	ServerMode   string `debugmap:"visible" default:"dev"`
}

type Auth struct {
	Enabled bool   `debugmap:"visible" default:"false"`
	Secret  string `debugmap:"sensitive"`
}

// RetryPolicy is the default policy for tasks that ask for retries.
func (s Scheduler) RetryPolicy() scheduler.RetryPolicy {
	return scheduler.RetryPolicy{
		Attempts: s.RetryAttempts,
		Initial:  s.RetryInitial,
		Max:      s.RetryMax,
	}
}

func (c *Configuration) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", c.LogFormat)
	}
	if c.Scheduler.Workers < 0 {
		return fmt.Errorf("invalid number of workers %d", c.Scheduler.Workers)
	}
	switch c.Server.ServerMode {
	case "dev", "prod":
	default:
		return fmt.Errorf("invalid server mode %q: must be dev or prod", c.Server.ServerMode)
	}
	if c.Server.ControlPlane && (c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535) {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("authentication is enabled but no secret is set")
	}
	return nil
}
