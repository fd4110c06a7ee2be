// Package config defines the configuration structure for taskpool.
//
// Configuration is organized into logical sections (Scheduler, Server, Auth)
// and uses code generation via optgen to create functional option helpers.
//
// # Configuration Structure
//
//	Configuration
//	├── Scheduler      - Worker count, verbosity and retry defaults
//	├── Server         - Control plane HTTP server settings
//	├── Auth           - Control plane authentication
//	├── DataFolder     - Batch history database folder; empty keeps it in memory
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Scheduler Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ Workers          │ 0       │ Workers when the batch sets none;      │
//	│                  │         │ 0 means one worker per task            │
//	│ Verbose          │ false   │ Log task creation and timings          │
//	│ RetryAttempts    │ 3       │ Default attempts for retried tasks     │
//	│ RetryInitial     │ 200ms   │ First backoff interval                 │
//	│ RetryMax         │ 5s      │ Largest backoff interval               │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ControlPlane     │ false   │ Serve status and cancel over HTTP      │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌─────────────┬─────────┬────────────────────────────────────────┐
//	│ Field       │ Default │ Description                            │
//	├─────────────┼─────────┼────────────────────────────────────────┤
//	│ Enabled     │ false   │ Require a JWT bearer token on /api/v1  │
//	│ Secret      │ ""      │ HS256 signing secret (sensitive)       │
//	└─────────────┴─────────┴────────────────────────────────────────┘
//
// # Code Generation
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Scheduler Server Auth
//
// Generated helpers include NewConfigurationWithOptionsAndDefaults,
// WithScheduler, WithServer, WithAuth, per-field options such as
// WithWorkers or WithHTTPPort, and DebugMap.
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithScheduler(*config.NewSchedulerWithOptionsAndDefaults(
//	        config.WithWorkers(4),
//	    )),
//	    config.WithLogLevel("debug"),
//	)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Debug Logging
//
// Fields are tagged `debugmap:"visible"` except Auth.Secret, which is
// `debugmap:"sensitive"` and never printed by DebugMap:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
