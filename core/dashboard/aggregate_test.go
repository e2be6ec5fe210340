package dashboard

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name      string
		scheduled []string
		want      int
	}{
		{name: "empty", want: 0},
		{name: "lectures", scheduled: []string{"ML", "CSS", "IVP", "DAV"}, want: 4},
		{name: "labs count double", scheduled: []string{"CSS", "IVP", "SEPM LAB", "CCL LAB"}, want: 6},
		{name: "repeats count", scheduled: []string{"ML", "ML", "ML LAB"}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Total(tt.scheduled); got != tt.want {
				t.Errorf("Total() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttended(t *testing.T) {
	tests := []struct {
		name   string
		marked []string
		want   int
	}{
		{name: "empty", want: 0},
		{name: "lectures", marked: []string{"ML", "CSS"}, want: 2},
		{name: "lab", marked: []string{"ML LAB"}, want: 2},
		{name: "css lab", marked: []string{"CSS LAB"}, want: 2},
		{name: "duplicates ignored", marked: []string{"ML LAB", "ML LAB", "ML"}, want: 3},
		{name: "unscheduled still counts", marked: []string{"ANYTHING"}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Attended(tt.marked); got != tt.want {
				t.Errorf("Attended() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name            string
		attended, total int
		want            float64
	}{
		{name: "no lectures", attended: 0, total: 0, want: 0},
		{name: "marked without lectures", attended: 3, total: 0, want: 0},
		{name: "none", attended: 0, total: 4, want: 0},
		{name: "all", attended: 4, total: 4, want: 100},
		{name: "two thirds", attended: 2, total: 3, want: 66.67},
		{name: "one third", attended: 1, total: 3, want: 33.33},
		{name: "tie rounds to even", attended: 1, total: 32, want: 3.12},
		{name: "tie rounds to even upwards", attended: 3, total: 32, want: 9.38},
		{name: "lab only", attended: 2, total: 2, want: 100},
		{name: "over 100", attended: 7, total: 4, want: 175},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.attended, tt.total); got != tt.want {
				t.Errorf("Percent(%d, %d) = %v, want %v", tt.attended, tt.total, got, tt.want)
			}
		})
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name string
		avg  null.Float64
		want float64
	}{
		{name: "no history", avg: null.Float64{}, want: 0},
		{name: "exact", avg: null.Float64From(75), want: 75},
		{name: "rounded up", avg: null.Float64From(79.166), want: 79.17},
		{name: "binary value below the tie", avg: null.Float64From(47.915), want: 47.91},
		{name: "mean of 12.5 and 83.33", avg: null.Float64From((12.5 + 83.33) / 2), want: 47.91},
		{name: "exact tie", avg: null.Float64From(0.125), want: 0.12},
		{name: "long fraction", avg: null.Float64From(200.0 / 3), want: 66.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overall(tt.avg); got != tt.want {
				t.Errorf("Overall() = %v, want %v", got, tt.want)
			}
		})
	}
}
