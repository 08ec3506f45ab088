package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ahrav/go-featurize/internal/applier"
	"github.com/ahrav/go-featurize/internal/configuration"
	"github.com/ahrav/go-featurize/internal/dataset"
	"github.com/ahrav/go-featurize/internal/enrich"
	"github.com/ahrav/go-featurize/internal/fitter"
)

var (
	fitCSVPath  string
	fitSpecPath string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit transformation state from a training CSV",
	Long: `The fit command reads a training dataset, derives the enrichment
columns, fits per-column statistics, and publishes the fitted state to
the configured store. Refitting on the same data reproduces the same
state byte for byte.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configuration.Load()
		if err != nil {
			return err
		}
		log := newLogger(cfg.LogLevel).With().
			Str("run_id", uuid.NewString()).
			Str("command", "fit").
			Logger()

		spec, err := resolveSpec(fitSpecPath, cfg)
		if err != nil {
			return err
		}

		records, err := dataset.LoadCSV(fitCSVPath)
		if err != nil {
			return err
		}
		log.Info().Int("records", len(records)).Str("csv", fitCSVPath).Msg("dataset loaded")

		enriched := enrich.New().ApplyAll(records)

		f, err := fitter.New(spec)
		if err != nil {
			return err
		}
		state, err := f.Fit(enriched)
		if err != nil {
			return fmt.Errorf("fit: %w", err)
		}
		log.Info().
			Int("features", state.Dim()).
			Int("columns", len(state.Columns)).
			Int("remainder", len(state.Remainder)).
			Msg("state fitted")

		// Sanity-check the state against its own training data before
		// publishing it.
		app, err := applier.New(state)
		if err != nil {
			return err
		}
		matrix, err := app.TransformMatrix(enriched)
		if err != nil {
			return fmt.Errorf("transform training data: %w", err)
		}
		rows, cols := matrix.Dims()
		log.Info().Int("rows", rows).Int("cols", cols).Msg("training matrix verified")

		st, cleanup, err := buildStore(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := st.Save(cmd.Context(), state); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		log.Info().Str("backend", cfg.StateBackend).Msg("fitted state published")
		return nil
	},
}

func init() {
	fitCmd.Flags().StringVar(&fitCSVPath, "csv", "", "Path to the training CSV (required)")
	fitCmd.Flags().StringVar(&fitSpecPath, "spec", "", "Path to a YAML column spec (default: built-in HR spec)")
	fitCmd.MarkFlagRequired("csv")
}
