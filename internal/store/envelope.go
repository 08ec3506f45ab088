package store

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-featurize/internal/domain"
)

// FormatVersion tags the serialized envelope so that readers can tell an
// unsupported format apart from a corrupt one. Bump on any breaking
// change to the state layout.
const FormatVersion = 1

// validate checks structural requirements on decoded envelopes.
var validate = validator.New(validator.WithRequiredStructEnabled())

// envelope wraps the fitted state with its format version for
// persistence. All backends share this encoding.
type envelope struct {
	Version int                 `json:"version" validate:"required"`
	State   *domain.FittedState `json:"state"   validate:"required"`
}

// encodeState serializes the state inside a versioned envelope.
// encoding/json writes map keys in sorted order, so identical states
// always produce identical bytes.
func encodeState(state *domain.FittedState) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("fitted state is nil")
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to persist invalid state: %w", err)
	}
	return json.Marshal(envelope{Version: FormatVersion, State: state})
}

// decodeState parses a persisted envelope back into a fitted state,
// mapping parse failures to domain.ErrStateCorrupt and version
// mismatches to domain.ErrStateVersion.
func decodeState(data []byte) (*domain.FittedState, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStateCorrupt, err)
	}
	if env.Version == 0 {
		return nil, fmt.Errorf("%w: missing format version tag", domain.ErrStateCorrupt)
	}
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, support %d", domain.ErrStateVersion, env.Version, FormatVersion)
	}
	if err := validate.Struct(env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStateCorrupt, err)
	}
	if err := env.State.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStateCorrupt, err)
	}
	return env.State, nil
}
