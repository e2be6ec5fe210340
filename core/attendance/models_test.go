package attendance

import "testing"

func TestWeight(t *testing.T) {
	tests := []struct {
		subject string
		want    int
	}{
		{"CSS LAB", 2},
		{"SEPM LAB", 2},
		{"CCL LAB", 2},
		{"DAV LAB", 2},
		{"ML LAB", 2},
		{"MINI PROJECT", 2},
		{"ML", 1},
		{"css lab", 1},
		{"CSS LAB ", 1},
		{"", 1},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			if got := Weight(tt.subject); got != tt.want {
				t.Errorf("Weight(%q) = %v, want %v", tt.subject, got, tt.want)
			}
		})
	}
}

func TestLabSubjects(t *testing.T) {
	labs := LabSubjects()
	if len(labs) != 6 {
		t.Fatalf("LabSubjects() len = %d, want 6", len(labs))
	}
	for i := 1; i < len(labs); i++ {
		if labs[i-1] > labs[i] {
			t.Errorf("LabSubjects() not sorted: %v", labs)
		}
	}
	for _, l := range labs {
		if !IsLab(l) {
			t.Errorf("IsLab(%q) = false", l)
		}
	}
}
