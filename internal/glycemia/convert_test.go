package glycemia

import (
	"math"
	"testing"

	"github.com/mlefevre/diabecare/internal/domain"
	apperrors "github.com/mlefevre/diabecare/internal/errors"
)

func TestToCanonicalIdentityForMgdl(t *testing.T) {
	for _, v := range []float64{20, 65, 95.5, 140, 200.5, 600} {
		if got := ToCanonical(v, domain.UnitMgDL); got != v {
			t.Errorf("ToCanonical(%v, mg/dL) = %v, want identity", v, got)
		}
	}
}

func TestMmolToMg(t *testing.T) {
	tests := []struct {
		mmol     float64
		expected float64
	}{
		{5.5, 99},
		{10, 180},
		{3.9, 70},
		{7.0, 126},
		{1.1, 20},
		{33.3, 600},
	}

	for _, tt := range tests {
		if got := MmolToMg(tt.mmol); got != tt.expected {
			t.Errorf("MmolToMg(%v) = %v, want %v", tt.mmol, got, tt.expected)
		}
	}
}

func TestMgToMmol(t *testing.T) {
	tests := []struct {
		mg       float64
		expected float64
	}{
		{100, 5.5},
		{180, 10.0},
		{70, 3.9},
		{250, 13.9},
		{65, 3.6},
	}

	for _, tt := range tests {
		if got := MgToMmol(tt.mg); got != tt.expected {
			t.Errorf("MgToMmol(%v) = %v, want %v", tt.mg, got, tt.expected)
		}
	}
}

// Round-tripping through the canonical unit is lossy on purpose: mg/dL is
// rounded to an integer and mmol/L to one decimal. The drift stays within one
// rounding unit and must not be "fixed".
func TestMmolRoundTripBoundedDrift(t *testing.T) {
	for m := 1.1; m <= 33.3; m += 0.7 {
		got := FromCanonical(ToCanonical(m, domain.UnitMmolL), domain.UnitMmolL)
		if math.Abs(got-m) > 0.1+1e-9 {
			t.Errorf("round trip of %.1f mmol/L drifted to %v", m, got)
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		value    float64
		from, to domain.Unit
		expected float64
	}{
		{120, domain.UnitMgDL, domain.UnitMgDL, 120},
		{6.2, domain.UnitMmolL, domain.UnitMmolL, 6.2},
		{180, domain.UnitMgDL, domain.UnitMmolL, 10.0},
		{10, domain.UnitMmolL, domain.UnitMgDL, 180},
	}

	for _, tt := range tests {
		if got := Convert(tt.value, tt.from, tt.to); got != tt.expected {
			t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.value, tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  domain.Unit
		valid bool
	}{
		{"zero", 0, domain.UnitMgDL, false},
		{"negative", -5, domain.UnitMgDL, false},
		{"NaN", math.NaN(), domain.UnitMgDL, false},
		{"+Inf", math.Inf(1), domain.UnitMgDL, false},
		{"below mg/dL floor", 19.9, domain.UnitMgDL, false},
		{"mg/dL floor", 20, domain.UnitMgDL, true},
		{"mg/dL ceiling", 600, domain.UnitMgDL, true},
		{"above mg/dL ceiling", 600.1, domain.UnitMgDL, false},
		{"below mmol/L floor", 1.0, domain.UnitMmolL, false},
		{"mmol/L floor", 1.1, domain.UnitMmolL, true},
		{"mmol/L ceiling", 33.3, domain.UnitMmolL, true},
		{"above mmol/L ceiling", 33.4, domain.UnitMmolL, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.value, tt.unit)
			if tt.valid && err != nil {
				t.Errorf("Validate(%v, %s) = %v, want nil", tt.value, tt.unit, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("Validate(%v, %s) = nil, want error", tt.value, tt.unit)
				}
				if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
					t.Errorf("Validate(%v, %s) error type = %v, want validation", tt.value, tt.unit, err)
				}
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(95.5, domain.UnitMgDL); got != "96 mg/dL" {
		t.Errorf("Format(95.5, mg/dL) = %q, want %q", got, "96 mg/dL")
	}
	if got := Format(5.5, domain.UnitMmolL); got != "5.5 mmol/L" {
		t.Errorf("Format(5.5, mmol/L) = %q, want %q", got, "5.5 mmol/L")
	}
}

func TestNormalRanges(t *testing.T) {
	mg := NormalRanges(domain.UnitMgDL)
	if mg.Fasting.Min != 70 || mg.Fasting.Max != 140 || mg.PostMeal.Max != 180 {
		t.Errorf("unexpected mg/dL ranges: %+v", mg)
	}

	mmol := NormalRanges(domain.UnitMmolL)
	if mmol.Fasting.Min != 3.9 || mmol.Fasting.Max != 7.8 || mmol.PostMeal.Max != 10.0 {
		t.Errorf("unexpected mmol/L ranges: %+v", mmol)
	}
}
