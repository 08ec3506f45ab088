package configuration

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ahrav/go-featurize/internal/domain"
)

// DefaultColumnSpec returns the built-in spec for the HR attrition
// dataset: which columns are scaled into [0,1], standardized, ordinal
// coded, one-hot expanded, or passed through unchanged. Columns absent
// here are passed through by the remainder policy at fit time.
func DefaultColumnSpec() domain.ColumnSpec {
	return domain.ColumnSpec{
		BoundedRange: []string{
			"ServiceDuration",
			"Absences",
			"DaysLateLast30",
			"SpecialProjectsCount",
			"EngagementSurvey",
			"EmpSatisfaction",
		},
		Standardized: []string{
			"Salary",
			"Age",
		},
		Ordinal: []string{
			"Sex",
			"EmploymentStatus",
		},
		OneHot: []string{
			"Department",
			"Position_Group",
			"MaritalDesc_Simple",
			"RecruitmentSource",
		},
		Passthrough: []string{
			"Sex_Encoded",
		},
	}
}

// LoadColumnSpec reads a column spec from a YAML file. The file lists
// column names under bounded_range, standardized, ordinal, one_hot, and
// passthrough keys; the result is validated for overlaps.
func LoadColumnSpec(path string) (domain.ColumnSpec, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return domain.ColumnSpec{}, fmt.Errorf("read column spec %s: %w", path, err)
	}

	var spec domain.ColumnSpec
	if err := v.Unmarshal(&spec); err != nil {
		return domain.ColumnSpec{}, fmt.Errorf("unmarshal column spec %s: %w", path, err)
	}

	if err := spec.Validate(); err != nil {
		return domain.ColumnSpec{}, fmt.Errorf("column spec %s: %w", path, err)
	}
	return spec, nil
}
