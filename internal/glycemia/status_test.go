package glycemia

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		mgdl     float64
		expected Category
	}{
		{20, CategoryLow},
		{69, CategoryLow},
		{69.9, CategoryLow},
		{70, CategoryNormal}, // boundary belongs to lower bucket
		{100, CategoryNormal},
		{140, CategoryNormal}, // boundary
		{140.1, CategoryHigh},
		{180, CategoryHigh},
		{200, CategoryHigh}, // boundary
		{200.1, CategoryVeryHigh},
		{201, CategoryVeryHigh},
		{600, CategoryVeryHigh},
	}

	for _, tt := range tests {
		if got := Classify(tt.mgdl).Category; got != tt.expected {
			t.Errorf("Classify(%v).Category = %s, want %s", tt.mgdl, got, tt.expected)
		}
	}
}

func TestClassifyMetadata(t *testing.T) {
	tests := []struct {
		mgdl     float64
		label    string
		severity Severity
		color    string
		bgColor  string
	}{
		{50, "Hypoglycémie", SeverityCritical, "#dc2626", "#fef2f2"},
		{100, "Normal", SeverityNormal, "#16a34a", "#f0fdf4"},
		{170, "Élevé", SeverityWarning, "#ea580c", "#fff7ed"},
		{300, "Très élevé", SeverityCritical, "#dc2626", "#fef2f2"},
	}

	for _, tt := range tests {
		s := Classify(tt.mgdl)
		if s.Label != tt.label || s.Severity != tt.severity || s.Color != tt.color || s.BgColor != tt.bgColor {
			t.Errorf("Classify(%v) = %+v, want label=%s severity=%s color=%s bg=%s",
				tt.mgdl, s, tt.label, tt.severity, tt.color, tt.bgColor)
		}
	}
}

// The classifier must partition the whole plausible range with no gap or
// overlap: walking upward never moves to a lower bucket.
func TestClassifyMonotonic(t *testing.T) {
	order := map[Category]int{
		CategoryLow:      0,
		CategoryNormal:   1,
		CategoryHigh:     2,
		CategoryVeryHigh: 3,
	}

	prev := -1
	for v := 20.0; v <= 600.0; v += 0.5 {
		rank := order[Classify(v).Category]
		if rank < prev {
			t.Fatalf("classification regressed at %v mg/dL", v)
		}
		prev = rank
	}
}
