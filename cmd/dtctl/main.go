package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	datatables_go "github.com/block/datatables-go"
	"github.com/block/datatables-go/logger"
	"github.com/block/datatables-go/rate"
)

var version = "0.1.0"

const envPrefix = "DATATABLES"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "dtctl",
		Short:         "dtctl - command line client for Workato Data Tables",
		SilenceUsage:  true,
		SilenceErrors: false,
		Long: `dtctl talks to the Workato Data Tables API.

Settings come from flags, DATATABLES_* environment variables (a .env file
in the working directory is loaded first) or a config file passed with
--config. Example:

  DATATABLES_API_TOKEN=... dtctl tables list --per-page 20`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("api-token", "", "API client token")
	flags.String("region", datatables_go.DefaultRegion, "data center: "+strings.Join(datatables_go.Regions, ", "))
	flags.String("base-url", "", "override the region host")
	flags.String("records-url", datatables_go.DefaultRecordsUrl, "records API host")
	flags.Int("max-retries", 3, "retries on HTTP 429 (0-6)")
	flags.Bool("retry", true, "retry rate-limited requests")
	flags.Duration("timeout", 30*time.Second, "per-request timeout")
	flags.Float64("rps", 0, "client side request rate limit; 0 disables it")
	flags.String("correlation-id", "", "pin the x-correlation-id header")
	flags.String("log-level", "warn", "debug, info, warn or error")
	_ = v.BindPFlags(flags)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dtctl v%s\n", version)
		},
	})

	root.AddCommand(
		newTestCmd(v),
		newTablesCmd(v),
		newFoldersCmd(v),
		newProjectsCmd(v),
		newRecordsCmd(v),
	)
	return root
}

func loadConfig(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}
	return nil
}

// newClient builds a client from the merged flag/env/file settings.
func newClient(v *viper.Viper) (*datatables_go.Client, func(), error) {
	token := v.GetString("api-token")
	if token == "" {
		return nil, nil, fmt.Errorf("missing API token: set --api-token or %s_API_TOKEN", envPrefix)
	}

	zl, err := newZap(v.GetString("log-level"))
	if err != nil {
		return nil, nil, err
	}
	return datatables_go.NewClient(token, clientOptions(v, logger.NewZap(zl))...), func() { _ = zl.Sync() }, nil
}

func clientOptions(v *viper.Viper, log logger.Logger) []datatables_go.ConfigOption {
	opts := []datatables_go.ConfigOption{
		datatables_go.WithRegion(v.GetString("region")),
		datatables_go.WithRecordsBaseUrl(v.GetString("records-url")),
		datatables_go.WithRetry(v.GetBool("retry")),
		datatables_go.WithMaxRetries(v.GetInt("max-retries")),
		datatables_go.WithTimeout(v.GetDuration("timeout")),
		datatables_go.WithLogger(log),
	}
	if baseUrl := v.GetString("base-url"); baseUrl != "" {
		opts = append(opts, datatables_go.WithBaseUrl(baseUrl))
	}
	if rps := v.GetFloat64("rps"); rps > 0 {
		opts = append(opts, datatables_go.WithRateLimiter(rate.NewTokenBucket(rps, 1)))
	}
	if cid := v.GetString("correlation-id"); cid != "" {
		opts = append(opts, datatables_go.WithCorrelationId(cid))
	}
	return opts
}

func newZap(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
