package summary

// DailySummary is the frozen attendance figure of one calendar date.
type DailySummary struct {
	Date       string  `json:"date" db:"date"`
	Attended   int     `json:"attended" db:"attended"`
	Total      int     `json:"total" db:"total"`
	Percentage float64 `json:"percentage" db:"percentage"`
}
