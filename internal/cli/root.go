package cli

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/taskpool/internal/config"
)

const envPrefix = "TASKPOOL"

// NewRootCmd creates the root cobra command for the taskpool CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(config.NewConfigurationWithOptionsAndDefaults())
}

func newRootCmd(cfg *config.Configuration) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "taskpool",
		Short: "Run batches of commands with bounded concurrency",
		Long: `taskpool runs the commands of a batch file across a fixed number of
workers, reports results in batch order or as they complete, and stops
admitting new commands on the first failure or on cancellation.

Every flag can also be set through a TASKPOOL_ prefixed environment
variable (TASKPOOL_LOG_LEVEL, TASKPOOL_WORKERS, ...) or a config file.`,
		SilenceUsage: true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			loadConfigFile(&configFile),
			func(cmd *cobra.Command, args []string) error {
				if err := cfg.Validate(); err != nil {
					return err
				}
				return setupLogging(cfg)
			},
		),
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file; flags and environment take precedence")
	registerFlags(root.PersistentFlags(), cfg)

	root.AddCommand(
		newRunCmd(cfg),
		newHistoryCmd(cfg),
		newVersionCmd(),
	)

	return root
}

func registerFlags(flags *pflag.FlagSet, cfg *config.Configuration) {
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (console, json)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.DataFolder, "data-folder", cfg.DataFolder, "Folder of the batch history database; empty keeps history in memory")

	flags.IntVar(&cfg.Scheduler.Workers, "workers", cfg.Scheduler.Workers, "Workers when the batch does not set any (0: one per task)")
	flags.BoolVar(&cfg.Scheduler.Verbose, "verbose", cfg.Scheduler.Verbose, "Log task creation and timings")
	flags.UintVar(&cfg.Scheduler.RetryAttempts, "retry-attempts", cfg.Scheduler.RetryAttempts, "Default attempts of retried tasks")
	flags.DurationVar(&cfg.Scheduler.RetryInitial, "retry-initial", cfg.Scheduler.RetryInitial, "First retry backoff")
	flags.DurationVar(&cfg.Scheduler.RetryMax, "retry-max", cfg.Scheduler.RetryMax, "Largest retry backoff")

	flags.BoolVar(&cfg.Server.ControlPlane, "control-plane", cfg.Server.ControlPlane, "Serve batch status and cancellation over HTTP")
	flags.IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "Control plane port")
	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Control plane mode (dev, prod)")

	flags.BoolVar(&cfg.Auth.Enabled, "auth-enabled", cfg.Auth.Enabled, "Require a JWT bearer token on the control plane")
	flags.StringVar(&cfg.Auth.Secret, "auth-secret", cfg.Auth.Secret, "HS256 secret used to verify control plane tokens")
}

// loadConfigFile fills every flag still unset from the config file, keyed
// by flag name.
func loadConfigFile(path *string) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		if *path == "" {
			return nil
		}

		v := viper.New()
		v.SetConfigFile(*path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %q: %w", *path, err)
		}

		var err error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err != nil || f.Changed || !v.IsSet(f.Name) {
				return
			}
			if setErr := cmd.Flags().Set(f.Name, v.GetString(f.Name)); setErr != nil {
				err = fmt.Errorf("invalid value for %q in %q: %w", f.Name, *path, setErr)
			}
		})
		return err
	}
}

func setupLogging(cfg *config.Configuration) error {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zc zap.Config
	if cfg.LogFormat == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = level

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	zap.S().Named("cli").Debugw("configuration loaded", "config", cfg.DebugMap())
	return nil
}
