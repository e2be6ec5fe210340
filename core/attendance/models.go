package attendance

import "sort"

// Mark is one ledger row. A lab marked once produces two rows (slots 1 and 2).
type Mark struct {
	ID      int64  `json:"id" db:"id"`
	Subject string `json:"subject" db:"subject"`
	Date    string `json:"date" db:"date"`
	Slot    int    `json:"slot" db:"slot"`
}

// MarkRequest is the payload of the mark action.
type MarkRequest struct {
	Subject string `json:"subject" form:"subject" validate:"required"`
}

var labSubjects = map[string]struct{}{
	"CSS LAB":      {},
	"SEPM LAB":     {},
	"CCL LAB":      {},
	"DAV LAB":      {},
	"ML LAB":       {},
	"MINI PROJECT": {},
}

// LabSubjects returns the subjects that count as two lectures, sorted.
func LabSubjects() []string {
	subjects := make([]string, 0, len(labSubjects))
	for s := range labSubjects {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// IsLab reports whether subject is a lab. Matching is exact and case-sensitive.
func IsLab(subject string) bool {
	_, ok := labSubjects[subject]
	return ok
}

// Weight is the number of lectures a subject counts for: 2 for labs, 1 otherwise.
func Weight(subject string) int {
	if IsLab(subject) {
		return 2
	}
	return 1
}
