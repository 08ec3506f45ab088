// Package applier maps raw records into fixed-shape feature vectors using
// a previously fitted transform state. Transformation is pure and
// side-effect free: the applier only borrows a read-only state, so a
// single Applier is safe for concurrent use by any number of callers.
//
// Out-of-range and unseen inputs are absorbed, not rejected: bounded
// values clamp to [0,1], unseen ordinal categories map to a reserved
// sentinel code, and unseen one-hot categories encode as the all-zero
// baseline. Rejecting a live inference request over a never-seen category
// would be worse than a well-defined approximate encoding.
package applier

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ahrav/go-featurize/internal/domain"
)

// Applier transforms raw records into feature vectors under a fitted
// state. Construct one per loaded state and reuse it; the state is never
// mutated.
type Applier struct {
	state *domain.FittedState
}

// New creates an Applier borrowing the given fitted state.
// The state is validated once here so every later Transform call can
// trust it.
func New(state *domain.FittedState) (*Applier, error) {
	if state == nil {
		return nil, fmt.Errorf("fitted state is nil")
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fitted state: %w", err)
	}
	return &Applier{state: state}, nil
}

// Dim returns the fixed output dimensionality.
func (a *Applier) Dim() int { return a.state.Dim() }

// FeatureNames returns a copy of the output dimension names in order.
func (a *Applier) FeatureNames() []string {
	names := make([]string, len(a.state.Features))
	copy(names, a.state.Features)
	return names
}

// Transform maps one record into a feature vector of exactly Dim()
// entries, in the order fixed by the fitted state. A record missing any
// required column fails with a missing-column error naming the column;
// extra columns are ignored because the output layout is fixed.
func (a *Applier) Transform(rec domain.RawRecord) (domain.FeatureVector, error) {
	s := a.state
	vec := make(domain.FeatureVector, 0, s.Dim())

	for _, col := range s.Spec.BoundedRange {
		v, err := numericAt(rec, col, domain.ErrNonNumeric)
		if err != nil {
			return nil, err
		}
		vec = append(vec, scaleBounded(v, s.Ranges[col]))
	}

	for _, col := range s.Spec.Standardized {
		v, err := numericAt(rec, col, domain.ErrNonNumeric)
		if err != nil {
			return nil, err
		}
		vec = append(vec, standardize(v, s.Moments[col]))
	}

	for _, col := range s.Spec.Ordinal {
		raw, ok := rec[col]
		if !ok {
			return nil, domain.NewColumnError(col, domain.ErrMissingColumn)
		}
		code, known := s.Ordinals[col][domain.CategoryValue(raw)]
		if !known {
			code = domain.UnknownOrdinalCode
		}
		vec = append(vec, float64(code))
	}

	for _, col := range s.Spec.OneHot {
		raw, ok := rec[col]
		if !ok {
			return nil, domain.NewColumnError(col, domain.ErrMissingColumn)
		}
		// Baseline and unknown categories both encode as all zeros.
		category := domain.CategoryValue(raw)
		for _, known := range s.OneHots[col].Indicators() {
			if category == known {
				vec = append(vec, 1)
			} else {
				vec = append(vec, 0)
			}
		}
	}

	for _, col := range s.Spec.Passthrough {
		v, err := numericAt(rec, col, domain.ErrNonNumericPassthrough)
		if err != nil {
			return nil, err
		}
		vec = append(vec, v)
	}
	for _, col := range s.Remainder {
		v, err := numericAt(rec, col, domain.ErrNonNumericPassthrough)
		if err != nil {
			return nil, err
		}
		vec = append(vec, v)
	}

	return vec, nil
}

// TransformMany applies Transform independently per record; batch size
// never changes a single record's output. The returned vectors align with
// the input by index, with nil entries for failed records; the second
// return lists each failure with its record index, so callers keep the
// good records and report the bad ones.
func (a *Applier) TransformMany(records []domain.RawRecord) ([]domain.FeatureVector, []*domain.RecordError) {
	vectors := make([]domain.FeatureVector, len(records))
	var failures []*domain.RecordError
	for i, rec := range records {
		vec, err := a.Transform(rec)
		if err != nil {
			failures = append(failures, domain.NewRecordError(i, err))
			continue
		}
		vectors[i] = vec
	}
	return vectors, failures
}

// TransformMatrix builds the dense design matrix the downstream estimator
// consumes, one row per record. Unlike TransformMany it fails on the
// first bad record, since a matrix with holes is useless for fitting.
func (a *Applier) TransformMatrix(records []domain.RawRecord) (*mat.Dense, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyTrainingSet
	}
	m := mat.NewDense(len(records), a.Dim(), nil)
	for i, rec := range records {
		vec, err := a.Transform(rec)
		if err != nil {
			return nil, domain.NewRecordError(i, err)
		}
		m.SetRow(i, vec)
	}
	return m, nil
}

// numericAt fetches a required numeric column, distinguishing missing
// columns from non-numeric values.
func numericAt(rec domain.RawRecord, col string, nonNumeric error) (float64, error) {
	raw, ok := rec[col]
	if !ok {
		return 0, domain.NewColumnError(col, domain.ErrMissingColumn)
	}
	v, ok := domain.NumericValue(raw)
	if !ok {
		return 0, domain.NewColumnError(col, nonNumeric)
	}
	return v, nil
}

// scaleBounded rescales v to [0,1] using the fitted range, clamping
// out-of-range inference values instead of extrapolating. A zero-width
// range scales to constant 0.
func scaleBounded(v float64, r domain.RangeStats) float64 {
	if r.Max == r.Min {
		return 0
	}
	scaled := (v - r.Min) / (r.Max - r.Min)
	if scaled < 0 {
		return 0
	}
	if scaled > 1 {
		return 1
	}
	return scaled
}

// standardize rescales v to zero mean and unit variance; a zero fitted
// standard deviation yields constant 0 rather than a division error.
func standardize(v float64, m domain.MomentStats) float64 {
	if m.StdDev == 0 {
		return 0
	}
	return (v - m.Mean) / m.StdDev
}
