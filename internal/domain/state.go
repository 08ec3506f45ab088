package domain

import "fmt"

// UnknownOrdinalCode is the reserved code emitted for a category never
// seen during fitting. Fitted codes start at 0, so -1 is distinct from
// every learned code.
const UnknownOrdinalCode = -1

// RangeStats holds the exact observed minimum and maximum of a
// bounded-range column over the training dataset.
type RangeStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MomentStats holds the mean and population standard deviation of a
// standardized column over the training dataset.
type MomentStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// OneHotCoding holds the ordered category vocabulary of a one-hot column.
// Categories are sorted lexicographically; Categories[0] is the dropped
// baseline, present in the output only as an all-zero encoding.
type OneHotCoding struct {
	Categories []string `json:"categories" validate:"min=1"`
}

// Baseline returns the dropped category.
func (c OneHotCoding) Baseline() string { return c.Categories[0] }

// Indicators returns the categories that own an output dimension.
func (c OneHotCoding) Indicators() []string { return c.Categories[1:] }

// FittedState is the complete set of parameters learned from training
// data that reproduces transformations at inference time. It is created
// by one Fit call, persisted wholesale, and read-only afterwards; the
// applier only borrows it. It carries no timestamps or identifiers so
// that refitting identical data yields a bit-identical state.
type FittedState struct {
	// Spec is the column specification the state was fitted under.
	Spec ColumnSpec `json:"spec"`

	// Ranges holds min/max per bounded-range column.
	Ranges map[string]RangeStats `json:"ranges,omitempty"`
	// Moments holds mean/std per standardized column.
	Moments map[string]MomentStats `json:"moments,omitempty"`
	// Ordinals holds the category-to-code map per ordinal column, codes
	// assigned in first-occurrence order over the training dataset.
	Ordinals map[string]map[string]int `json:"ordinals,omitempty"`
	// OneHots holds the sorted vocabulary per one-hot column.
	OneHots map[string]OneHotCoding `json:"one_hots,omitempty"`

	// Remainder lists columns passed through by the remainder policy:
	// present in the training data but absent from every spec group,
	// sorted lexicographically for a stable layout.
	Remainder []string `json:"remainder,omitempty"`

	// Columns lists every required input column in layout order. Records
	// missing any of these are rejected at fit and inference time.
	Columns []string `json:"columns" validate:"min=1"`
	// Features lists the output dimension names in their fixed order.
	// Every vector produced from this state has exactly len(Features)
	// entries in this order.
	Features []string `json:"features" validate:"min=1"`
}

// Dim returns the fixed output dimensionality.
func (s *FittedState) Dim() int { return len(s.Features) }

// OneHotFeature names the indicator dimension for one category of a
// one-hot column.
func OneHotFeature(column, category string) string {
	return column + "=" + category
}

// Validate checks the internal consistency a loaded state must satisfy
// before the applier may borrow it. A state that fails here is corrupt,
// not merely empty.
func (s *FittedState) Validate() error {
	if len(s.Columns) == 0 || len(s.Features) == 0 {
		return fmt.Errorf("state has no fitted columns")
	}
	if err := s.Spec.Validate(); err != nil {
		return err
	}
	for _, col := range s.Spec.BoundedRange {
		if _, ok := s.Ranges[col]; !ok {
			return fmt.Errorf("bounded-range column %q has no fitted range", col)
		}
	}
	for _, col := range s.Spec.Standardized {
		if _, ok := s.Moments[col]; !ok {
			return fmt.Errorf("standardized column %q has no fitted moments", col)
		}
	}
	for _, col := range s.Spec.Ordinal {
		if len(s.Ordinals[col]) == 0 {
			return fmt.Errorf("ordinal column %q has no fitted codes", col)
		}
	}
	for _, col := range s.Spec.OneHot {
		if len(s.OneHots[col].Categories) == 0 {
			return fmt.Errorf("one-hot column %q has no fitted vocabulary", col)
		}
	}
	if got := s.expectedDim(); got != len(s.Features) {
		return fmt.Errorf("feature layout mismatch: %d names for %d dimensions", len(s.Features), got)
	}
	return nil
}

// expectedDim recomputes the output width from the fitted parameters.
func (s *FittedState) expectedDim() int {
	dim := len(s.Spec.BoundedRange) + len(s.Spec.Standardized) + len(s.Spec.Ordinal)
	for _, col := range s.Spec.OneHot {
		dim += len(s.OneHots[col].Indicators())
	}
	dim += len(s.Spec.Passthrough) + len(s.Remainder)
	return dim
}
