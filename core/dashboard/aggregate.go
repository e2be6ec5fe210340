package dashboard

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/rohitfewfer/attendance/core/attendance"
)

// Total is the weighted number of lectures scheduled. A subject listed twice counts twice.
func Total(scheduled []string) int {
	var total int
	for _, subject := range scheduled {
		total += attendance.Weight(subject)
	}
	return total
}

// Attended is the weighted number of distinct subjects marked.
// It is not capped by Total: subjects outside the schedule still count.
func Attended(marked []string) int {
	var attended int
	seen := make(map[string]struct{}, len(marked))
	for _, subject := range marked {
		if _, ok := seen[subject]; ok {
			continue
		}
		seen[subject] = struct{}{}
		attended += attendance.Weight(subject)
	}
	return attended
}

// Percent returns attended/total as a percentage rounded to 2 decimals, or 0 when total is 0.
func Percent(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(attended) / float64(total) * 100)
}

// Overall rounds the average of the saved daily percentages; 0 when there is no history.
func Overall(avg null.Float64) float64 {
	if !avg.Valid {
		return 0
	}
	return round2(avg.Float64)
}

// round2 rounds the exact binary value of f to 2 decimals, ties to even:
// 3.125 gives 3.12 and 47.915 (stored as 47.91499...) gives 47.91.
func round2(f float64) float64 {
	d, err := decimal.NewFromString(strconv.FormatFloat(f, 'f', 2, 64))
	if err != nil { // NaN or Inf
		return f
	}
	r, _ := d.Float64()
	return r
}
