// Package enrich derives the categorical and tenure columns the HR
// column spec expects from the raw employee fields. Enrichment runs
// before fitting and before inference so both sides see the same
// column set.
package enrich

import (
	"strings"
	"time"

	"github.com/ahrav/go-featurize/internal/domain"
)

// Derived column names added to each record.
const (
	ColPositionGroup   = "Position_Group"
	ColMaritalSimple   = "MaritalDesc_Simple"
	ColSexEncoded      = "Sex_Encoded"
	ColServiceDuration = "ServiceDuration"
)

// Source column names consumed by the derivations.
const (
	ColPosition    = "Position"
	ColMaritalDesc = "MaritalDesc"
	ColSex         = "Sex"
	ColDateOfHire  = "DateofHire"
)

// Position groups produced by PositionGroup.
const (
	GroupTechnical      = "Technical"
	GroupManagement     = "Management"
	GroupAdministrative = "Administrative"
	GroupOther          = "Other"
)

var (
	technicalKeywords = []string{
		"technician", "engineer", "developer", "analyst",
		"dba", "architect", "database", "programmer", "specialist",
	}
	managementKeywords = []string{
		"manager", "director", "ceo", "president", "cio",
		"supervisor", "lead", "head", "chief",
	}
	adminKeywords = []string{
		"admin", "accountant", "support", "assistant",
		"coordinator", "clerk", "secretary",
	}
)

// PositionGroup buckets a job title into Technical, Management,
// Administrative, or Other by keyword match. Technical keywords win
// over management, which win over administrative, so "Lead Engineer"
// is Technical.
func PositionGroup(position string) string {
	p := strings.ToLower(strings.TrimSpace(position))
	if p == "" {
		return GroupOther
	}
	for _, kw := range technicalKeywords {
		if strings.Contains(p, kw) {
			return GroupTechnical
		}
	}
	for _, kw := range managementKeywords {
		if strings.Contains(p, kw) {
			return GroupManagement
		}
	}
	for _, kw := range adminKeywords {
		if strings.Contains(p, kw) {
			return GroupAdministrative
		}
	}
	return GroupOther
}

// SimplifyMaritalStatus collapses marital status to Married, Single, or
// Other (divorced, separated, widowed, unknown all land in Other).
func SimplifyMaritalStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "married":
		return "Married"
	case "single":
		return "Single"
	default:
		return "Other"
	}
}

// SexIndicator encodes sex as 1 for values starting with F (any case),
// 0 otherwise.
func SexIndicator(sex string) int {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(sex)), "F") {
		return 1
	}
	return 0
}

// hireDateFormats are tried in order when parsing DateofHire.
var hireDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
}

// TenureYears converts a hire date to years of service as of now,
// floored at zero so future-dated hires do not produce negative tenure.
func TenureYears(hired, now time.Time) float64 {
	years := now.Sub(hired).Hours() / 24 / 365.25
	if years < 0 {
		return 0
	}
	return years
}

// Enricher adds derived columns to raw records. The clock is injectable
// so tenure computation is deterministic in tests.
type Enricher struct {
	now func() time.Time
}

// New creates an Enricher using the wall clock.
func New() *Enricher { return &Enricher{now: time.Now} }

// NewWithClock creates an Enricher with a fixed notion of now.
func NewWithClock(now func() time.Time) *Enricher { return &Enricher{now: now} }

// Apply returns a copy of the record with the derived columns set.
// Existing derived values are overwritten so enrichment is idempotent;
// source columns that are absent yield the Other/zero defaults, except
// ServiceDuration which is only derived when DateofHire parses.
func (e *Enricher) Apply(record domain.RawRecord) domain.RawRecord {
	out := make(domain.RawRecord, len(record)+4)
	for k, v := range record {
		out[k] = v
	}

	out[ColPositionGroup] = PositionGroup(domain.CategoryValue(record[ColPosition]))
	out[ColMaritalSimple] = SimplifyMaritalStatus(domain.CategoryValue(record[ColMaritalDesc]))
	out[ColSexEncoded] = SexIndicator(domain.CategoryValue(record[ColSex]))

	if raw := domain.CategoryValue(record[ColDateOfHire]); raw != "" {
		for _, layout := range hireDateFormats {
			if hired, err := time.Parse(layout, raw); err == nil {
				out[ColServiceDuration] = TenureYears(hired, e.now())
				break
			}
		}
	}

	return out
}

// ApplyAll enriches every record in the batch.
func (e *Enricher) ApplyAll(records []domain.RawRecord) []domain.RawRecord {
	out := make([]domain.RawRecord, len(records))
	for i, r := range records {
		out[i] = e.Apply(r)
	}
	return out
}
