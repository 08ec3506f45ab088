package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ahrav/go-featurize/internal/applier"
	"github.com/ahrav/go-featurize/internal/configuration"
	"github.com/ahrav/go-featurize/internal/domain"
	"github.com/ahrav/go-featurize/internal/enrich"
)

var transformRecordJSON string

// transformOutput is the JSON document printed for a transformed record.
type transformOutput struct {
	Features []string  `json:"features"`
	Vector   []float64 `json:"vector"`
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform a record using the published fitted state",
	Long: `The transform command loads the fitted state from the configured
store, enriches the given record, and prints its feature vector as JSON
alongside the feature names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configuration.Load()
		if err != nil {
			return err
		}
		log := newLogger(cfg.LogLevel).With().
			Str("run_id", uuid.NewString()).
			Str("command", "transform").
			Logger()

		var record domain.RawRecord
		if err := json.Unmarshal([]byte(transformRecordJSON), &record); err != nil {
			return fmt.Errorf("parse --record: %w", err)
		}

		st, cleanup, err := buildStore(cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		state, err := st.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}
		log.Debug().Int("features", state.Dim()).Msg("fitted state loaded")

		app, err := applier.New(state)
		if err != nil {
			return err
		}

		vector, err := app.Transform(enrich.New().Apply(record))
		if err != nil {
			return fmt.Errorf("transform record: %w", err)
		}

		out := transformOutput{Features: app.FeatureNames(), Vector: vector}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	transformCmd.Flags().StringVar(&transformRecordJSON, "record", "", "Employee record as a JSON object (required)")
	transformCmd.MarkFlagRequired("record")
}
