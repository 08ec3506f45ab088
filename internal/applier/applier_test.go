package applier

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-featurize/internal/domain"
	"github.com/ahrav/go-featurize/internal/fitter"
)

// fitState fits the given records under spec, failing the test on error.
func fitState(t *testing.T, spec domain.ColumnSpec, records []domain.RawRecord) *domain.FittedState {
	t.Helper()
	f, err := fitter.New(spec)
	require.NoError(t, err)
	state, err := f.Fit(records)
	require.NoError(t, err)
	return state
}

func salaryDepartmentState(t *testing.T) *domain.FittedState {
	t.Helper()
	return fitState(t,
		domain.ColumnSpec{
			Standardized: []string{"Salary"},
			OneHot:       []string{"Department"},
		},
		[]domain.RawRecord{
			{"Salary": 50000, "Department": "Sales"},
			{"Salary": 70000, "Department": "Engineering"},
		},
	)
}

func TestNew_RejectsInvalidState(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&domain.FittedState{})
	assert.Error(t, err)
}

func TestTransform_SalaryDepartmentExample(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	tests := []struct {
		name     string
		record   domain.RawRecord
		expected domain.FeatureVector
	}{
		{
			name:     "known non-baseline category",
			record:   domain.RawRecord{"Salary": 70000, "Department": "Sales"},
			expected: domain.FeatureVector{1.0, 1.0},
		},
		{
			name:     "unseen category treated as baseline",
			record:   domain.RawRecord{"Salary": 50000, "Department": "Marketing"},
			expected: domain.FeatureVector{-1.0, 0.0},
		},
		{
			name:     "baseline category encodes all zeros",
			record:   domain.RawRecord{"Salary": 60000, "Department": "Engineering"},
			expected: domain.FeatureVector{0.0, 0.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec, err := a.Transform(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, vec)
		})
	}
}

func TestTransform_UnknownCategoryMatchesBaseline(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	baseline, err := a.Transform(domain.RawRecord{"Salary": 60000, "Department": "Engineering"})
	require.NoError(t, err)
	unknown, err := a.Transform(domain.RawRecord{"Salary": 60000, "Department": "Warehouse"})
	require.NoError(t, err)

	assert.Equal(t, baseline, unknown)
}

func TestTransform_BoundedRangeClamping(t *testing.T) {
	state := fitState(t,
		domain.ColumnSpec{BoundedRange: []string{"Absences"}},
		[]domain.RawRecord{{"Absences": 2}, {"Absences": 10}},
	)
	a, err := New(state)
	require.NoError(t, err)

	tests := []struct {
		name     string
		value    any
		expected float64
	}{
		{
			name:     "training minimum maps to 0",
			value:    2,
			expected: 0.0,
		},
		{
			name:     "training maximum maps to 1",
			value:    10,
			expected: 1.0,
		},
		{
			name:     "midpoint maps linearly",
			value:    6,
			expected: 0.5,
		},
		{
			name:     "above maximum clamps to exactly 1",
			value:    50,
			expected: 1.0,
		},
		{
			name:     "below minimum clamps to exactly 0",
			value:    -3,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec, err := a.Transform(domain.RawRecord{"Absences": tt.value})
			require.NoError(t, err)
			assert.Equal(t, domain.FeatureVector{tt.expected}, vec)
		})
	}
}

func TestTransform_ZeroVarianceGuards(t *testing.T) {
	state := fitState(t,
		domain.ColumnSpec{
			BoundedRange: []string{"DaysLate"},
			Standardized: []string{"Salary"},
		},
		[]domain.RawRecord{
			{"DaysLate": 2, "Salary": 60000},
			{"DaysLate": 2, "Salary": 60000},
		},
	)
	a, err := New(state)
	require.NoError(t, err)

	// Any value on a zero-variance column yields 0, never NaN.
	for _, value := range []float64{-100, 0, 2, 60000, 1e9} {
		vec, err := a.Transform(domain.RawRecord{"DaysLate": value, "Salary": value})
		require.NoError(t, err)
		assert.Equal(t, domain.FeatureVector{0, 0}, vec)
	}
}

func TestTransform_OrdinalCodes(t *testing.T) {
	state := fitState(t,
		domain.ColumnSpec{Ordinal: []string{"Status"}},
		[]domain.RawRecord{
			{"Status": "Active"},
			{"Status": "Terminated"},
		},
	)
	a, err := New(state)
	require.NoError(t, err)

	tests := []struct {
		name     string
		status   string
		expected float64
	}{
		{
			name:     "first seen category",
			status:   "Active",
			expected: 0,
		},
		{
			name:     "second seen category",
			status:   "Terminated",
			expected: 1,
		},
		{
			name:     "unseen category maps to sentinel",
			status:   "Sabbatical",
			expected: float64(domain.UnknownOrdinalCode),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec, err := a.Transform(domain.RawRecord{"Status": tt.status})
			require.NoError(t, err)
			assert.Equal(t, domain.FeatureVector{tt.expected}, vec)
		})
	}
}

func TestTransform_MissingColumn(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	_, err = a.Transform(domain.RawRecord{"Salary": 60000})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	var colErr *domain.ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "Department", colErr.Column)
}

func TestTransform_NonNumericPassthrough(t *testing.T) {
	state := fitState(t,
		domain.ColumnSpec{Passthrough: []string{"Sex_Encoded"}},
		[]domain.RawRecord{{"Sex_Encoded": 1}},
	)
	a, err := New(state)
	require.NoError(t, err)

	vec, err := a.Transform(domain.RawRecord{"Sex_Encoded": "1"})
	require.NoError(t, err)
	assert.Equal(t, domain.FeatureVector{1}, vec)

	_, err = a.Transform(domain.RawRecord{"Sex_Encoded": "female"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNonNumericPassthrough)

	var colErr *domain.ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "Sex_Encoded", colErr.Column)
}

func TestTransform_ExtraColumnsIgnored(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	vec, err := a.Transform(domain.RawRecord{
		"Salary":     70000,
		"Department": "Sales",
		"Surprise":   "ignored",
	})
	require.NoError(t, err)
	assert.Len(t, vec, a.Dim())
}

func TestTransform_Idempotent(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	rec := domain.RawRecord{"Salary": 70000, "Department": "Sales"}
	first, err := a.Transform(rec)
	require.NoError(t, err)
	second, err := a.Transform(rec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTransformMany_PartialBatch(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	vectors, failures := a.TransformMany([]domain.RawRecord{
		{"Salary": 70000, "Department": "Sales"},
		{"Salary": 50000}, // missing Department
		{"Salary": 50000, "Department": "Engineering"},
	})

	require.Len(t, vectors, 3)
	assert.Equal(t, domain.FeatureVector{1, 1}, vectors[0])
	assert.Nil(t, vectors[1])
	assert.Equal(t, domain.FeatureVector{-1, 0}, vectors[2])

	require.Len(t, failures, 1)
	assert.Equal(t, 1, failures[0].Index)
	assert.ErrorIs(t, failures[0], domain.ErrMissingColumn)
}

func TestTransformMany_BatchSizeIndependence(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	rec := domain.RawRecord{"Salary": 70000, "Department": "Sales"}
	single, err := a.Transform(rec)
	require.NoError(t, err)

	batched, failures := a.TransformMany([]domain.RawRecord{
		{"Salary": 50000, "Department": "Engineering"},
		rec,
		{"Salary": 60000, "Department": "Marketing"},
	})
	assert.Empty(t, failures)
	assert.Equal(t, single, batched[1])
}

func TestTransformMatrix(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	m, err := a.TransformMatrix([]domain.RawRecord{
		{"Salary": 70000, "Department": "Sales"},
		{"Salary": 50000, "Department": "Engineering"},
	})
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, a.Dim(), cols)
	assert.Equal(t, []float64{1, 1}, m.RawRowView(0))
	assert.Equal(t, []float64{-1, 0}, m.RawRowView(1))
}

func TestTransformMatrix_FailsOnBadRecord(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	_, err = a.TransformMatrix([]domain.RawRecord{
		{"Salary": 70000, "Department": "Sales"},
		{"Department": "Sales"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	var recErr *domain.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 1, recErr.Index)

	_, err = a.TransformMatrix(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyTrainingSet)
}

func TestTransform_ConcurrentReaders(t *testing.T) {
	a, err := New(salaryDepartmentState(t))
	require.NoError(t, err)

	rec := domain.RawRecord{"Salary": 70000, "Department": "Sales"}
	want, err := a.Transform(rec)
	require.NoError(t, err)

	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range 100 {
				got, err := a.Transform(rec)
				assert.NoError(t, err)
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()
}
