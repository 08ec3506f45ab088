package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ahrav/go-featurize/internal/configuration"
	"github.com/ahrav/go-featurize/internal/domain"
	"github.com/ahrav/go-featurize/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "featurize",
	Short: "Fit and apply HR feature transformations",
	Long: `featurize fits column statistics from a training dataset and turns
employee records into fixed-width numeric feature vectors using the
fitted state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI. Errors are logged before being returned so main
// can exit nonzero without printing twice.
func Execute() error {
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(transformCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log := newLogger("error")
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// buildStore constructs the configured state store. The returned
// cleanup releases any backend resources and is safe to defer.
func buildStore(cfg *configuration.Config, log zerolog.Logger) (store.Store, func(), error) {
	switch cfg.StateBackend {
	case configuration.BackendFile:
		return store.NewFileStore(cfg.StatePath, log), func() {}, nil
	case configuration.BackendBolt:
		s, err := store.NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case configuration.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		s := store.NewRedisStore(client, cfg.RedisKey)
		return s, func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}
}

// resolveSpec picks the column spec: the --spec flag wins, then
// SPEC_PATH from the environment, then the built-in HR spec.
func resolveSpec(flagPath string, cfg *configuration.Config) (domain.ColumnSpec, error) {
	path := flagPath
	if path == "" {
		path = cfg.SpecPath
	}
	if path == "" {
		return configuration.DefaultColumnSpec(), nil
	}
	return configuration.LoadColumnSpec(path)
}
