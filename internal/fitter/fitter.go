// Package fitter computes fitted transform parameters from a training
// dataset: min/max for bounded-range columns, mean and population
// standard deviation for standardized columns, first-occurrence integer
// codes for ordinal columns, and sorted vocabularies for one-hot columns.
//
// Fitting is deterministic: identical input datasets always yield
// identical fitted state. No vocabulary or code assignment depends on map
// iteration order.
package fitter

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ahrav/go-featurize/internal/domain"
)

// Fitter computes a FittedState from training records under an immutable
// column specification. A Fitter is stateless between Fit calls and safe
// for concurrent use.
type Fitter struct {
	spec domain.ColumnSpec
}

// New creates a Fitter for the given column specification.
// Returns an error if the specification's groups overlap.
func New(spec domain.ColumnSpec) (*Fitter, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid column spec: %w", err)
	}
	return &Fitter{spec: spec}, nil
}

// Fit scans the training dataset once per column group and produces the
// complete fitted state. Remainder passthrough columns are inferred from
// the first record; every record must then carry all required columns or
// Fit fails with a record-indexed missing-column error.
//
// Fitting an empty dataset fails with domain.ErrEmptyTrainingSet.
func (f *Fitter) Fit(records []domain.RawRecord) (*domain.FittedState, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyTrainingSet
	}

	remainder := f.inferRemainder(records[0])

	required := append(f.spec.Columns(), remainder...)
	for i, rec := range records {
		for _, col := range required {
			if _, ok := rec[col]; !ok {
				return nil, domain.NewRecordError(i, domain.NewColumnError(col, domain.ErrMissingColumn))
			}
		}
	}

	state := &domain.FittedState{
		Spec:      f.spec,
		Remainder: remainder,
		Columns:   required,
	}

	if err := f.fitRanges(records, state); err != nil {
		return nil, err
	}
	if err := f.fitMoments(records, state); err != nil {
		return nil, err
	}
	f.fitOrdinals(records, state)
	f.fitOneHots(records, state)

	state.Features = featureLayout(state)
	return state, nil
}

// inferRemainder returns the columns of the first record that belong to
// no spec group, sorted lexicographically for a stable layout.
func (f *Fitter) inferRemainder(first domain.RawRecord) []string {
	configured := make(map[string]struct{})
	for _, col := range f.spec.Columns() {
		configured[col] = struct{}{}
	}

	var remainder []string
	for col := range first {
		if _, ok := configured[col]; !ok {
			remainder = append(remainder, col)
		}
	}
	sort.Strings(remainder)
	return remainder
}

func (f *Fitter) fitRanges(records []domain.RawRecord, state *domain.FittedState) error {
	if len(f.spec.BoundedRange) == 0 {
		return nil
	}
	state.Ranges = make(map[string]domain.RangeStats, len(f.spec.BoundedRange))
	for _, col := range f.spec.BoundedRange {
		values, err := numericColumn(records, col)
		if err != nil {
			return err
		}
		state.Ranges[col] = domain.RangeStats{
			Min: floats.Min(values),
			Max: floats.Max(values),
		}
	}
	return nil
}

func (f *Fitter) fitMoments(records []domain.RawRecord, state *domain.FittedState) error {
	if len(f.spec.Standardized) == 0 {
		return nil
	}
	state.Moments = make(map[string]domain.MomentStats, len(f.spec.Standardized))
	for _, col := range f.spec.Standardized {
		values, err := numericColumn(records, col)
		if err != nil {
			return err
		}
		state.Moments[col] = domain.MomentStats{
			Mean:   stat.Mean(values, nil),
			StdDev: stat.PopStdDev(values, nil),
		}
	}
	return nil
}

// fitOrdinals assigns integer codes in first-occurrence order over the
// dataset, so the mapping depends only on record order, never on map
// iteration.
func (f *Fitter) fitOrdinals(records []domain.RawRecord, state *domain.FittedState) {
	if len(f.spec.Ordinal) == 0 {
		return
	}
	state.Ordinals = make(map[string]map[string]int, len(f.spec.Ordinal))
	for _, col := range f.spec.Ordinal {
		codes := make(map[string]int)
		for _, rec := range records {
			category := domain.CategoryValue(rec[col])
			if _, ok := codes[category]; !ok {
				codes[category] = len(codes)
			}
		}
		state.Ordinals[col] = codes
	}
}

// fitOneHots collects the distinct categories per one-hot column and
// sorts them lexicographically; the first sorted category becomes the
// dropped baseline.
func (f *Fitter) fitOneHots(records []domain.RawRecord, state *domain.FittedState) {
	if len(f.spec.OneHot) == 0 {
		return
	}
	state.OneHots = make(map[string]domain.OneHotCoding, len(f.spec.OneHot))
	for _, col := range f.spec.OneHot {
		distinct := make(map[string]struct{})
		for _, rec := range records {
			distinct[domain.CategoryValue(rec[col])] = struct{}{}
		}
		categories := make([]string, 0, len(distinct))
		for category := range distinct {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		state.OneHots[col] = domain.OneHotCoding{Categories: categories}
	}
}

// numericColumn extracts one column as float64s, failing with the record
// index and column name on the first non-numeric value.
func numericColumn(records []domain.RawRecord, col string) ([]float64, error) {
	values := make([]float64, len(records))
	for i, rec := range records {
		v, ok := domain.NumericValue(rec[col])
		if !ok {
			return nil, domain.NewRecordError(i, domain.NewColumnError(col, domain.ErrNonNumeric))
		}
		values[i] = v
	}
	return values, nil
}

// featureLayout fixes the output dimension order: bounded-range columns,
// standardized columns, ordinal columns, one-hot indicator expansions
// (baseline dropped), explicit passthrough columns, then the inferred
// remainder.
func featureLayout(state *domain.FittedState) []string {
	features := make([]string, 0, len(state.Columns))
	features = append(features, state.Spec.BoundedRange...)
	features = append(features, state.Spec.Standardized...)
	features = append(features, state.Spec.Ordinal...)
	for _, col := range state.Spec.OneHot {
		for _, category := range state.OneHots[col].Indicators() {
			features = append(features, domain.OneHotFeature(col, category))
		}
	}
	features = append(features, state.Spec.Passthrough...)
	features = append(features, state.Remainder...)
	return features
}
