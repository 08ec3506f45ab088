package domain

import "fmt"

// TransformClass identifies how a raw column is converted into output
// dimensions.
type TransformClass string

// The five transform classes. Every configured column belongs to exactly
// one of the first four; anything else resolves to ClassPassthrough.
const (
	ClassBoundedRange TransformClass = "bounded_range"
	ClassStandardized TransformClass = "standardized"
	ClassOrdinal      TransformClass = "ordinal"
	ClassOneHot       TransformClass = "one_hot"
	ClassPassthrough  TransformClass = "passthrough"
)

// ColumnSpec is the immutable, process-wide configuration mapping raw
// column names to transform classes. It is defined once (configuration,
// not data-derived) and passed by value into fitter and applier
// construction so multiple models can coexist.
//
// Columns absent from every group are passed through unmodified; that
// remainder policy is what keeps new, unanticipated columns from aborting
// the pipeline.
type ColumnSpec struct {
	// BoundedRange columns are rescaled to [0,1] with training min/max.
	BoundedRange []string `json:"bounded_range,omitempty" mapstructure:"bounded_range"`
	// Standardized columns are rescaled to zero mean, unit variance.
	Standardized []string `json:"standardized,omitempty" mapstructure:"standardized"`
	// Ordinal columns map category strings to integer codes.
	Ordinal []string `json:"ordinal,omitempty" mapstructure:"ordinal"`
	// OneHot columns expand into binary indicators, baseline dropped.
	OneHot []string `json:"one_hot,omitempty" mapstructure:"one_hot"`
	// Passthrough columns are cast to float unchanged. Columns never
	// mentioned anywhere get the same treatment via the remainder policy.
	Passthrough []string `json:"passthrough,omitempty" mapstructure:"passthrough"`
}

// Classify returns the transform class for a column name. It is total:
// unknown columns resolve to ClassPassthrough rather than an error.
func (s ColumnSpec) Classify(column string) TransformClass {
	for _, c := range s.BoundedRange {
		if c == column {
			return ClassBoundedRange
		}
	}
	for _, c := range s.Standardized {
		if c == column {
			return ClassStandardized
		}
	}
	for _, c := range s.Ordinal {
		if c == column {
			return ClassOrdinal
		}
	}
	for _, c := range s.OneHot {
		if c == column {
			return ClassOneHot
		}
	}
	return ClassPassthrough
}

// Columns returns every configured column in group order: bounded-range,
// standardized, ordinal, one-hot, passthrough. This order also fixes the
// leading portion of the output feature layout.
func (s ColumnSpec) Columns() []string {
	out := make([]string, 0,
		len(s.BoundedRange)+len(s.Standardized)+len(s.Ordinal)+len(s.OneHot)+len(s.Passthrough))
	out = append(out, s.BoundedRange...)
	out = append(out, s.Standardized...)
	out = append(out, s.Ordinal...)
	out = append(out, s.OneHot...)
	out = append(out, s.Passthrough...)
	return out
}

// Validate reports the first column assigned to more than one transform
// class, or listed twice within one class. The groups must partition the
// configured columns with no overlaps.
func (s ColumnSpec) Validate() error {
	seen := make(map[string]TransformClass)
	groups := []struct {
		class   TransformClass
		columns []string
	}{
		{ClassBoundedRange, s.BoundedRange},
		{ClassStandardized, s.Standardized},
		{ClassOrdinal, s.Ordinal},
		{ClassOneHot, s.OneHot},
		{ClassPassthrough, s.Passthrough},
	}
	for _, g := range groups {
		for _, col := range g.columns {
			if col == "" {
				return fmt.Errorf("%s group: %w", g.class, fmt.Errorf("empty column name"))
			}
			if prev, ok := seen[col]; ok {
				return fmt.Errorf("%w: %q in %s and %s", ErrSpecOverlap, col, prev, g.class)
			}
			seen[col] = g.class
		}
	}
	return nil
}
