package glycemia

// Category is the clinical bucket a canonical value falls into.
type Category string

const (
	CategoryLow      Category = "low"
	CategoryNormal   Category = "normal"
	CategoryHigh     Category = "high"
	CategoryVeryHigh Category = "very_high"
)

// Severity grades a status for user-facing emphasis.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Status is the derived clinical classification of a canonical value. It is
// never persisted; always recomputed so threshold changes cannot drift.
// Color and BgColor are presentation metadata, stable per category.
type Status struct {
	Label    string
	Category Category
	Severity Severity
	Color    string
	BgColor  string
}

// Classification thresholds in mg/dL. Boundary values belong to the
// lower-adjacent bucket.
const (
	thresholdLow  = 70.0
	thresholdHigh = 140.0
	thresholdVery = 200.0
)

// Classify maps a canonical mg/dL value to its clinical status. Thresholds
// are specific to mg/dL; mmol/L values must be converted first.
func Classify(canonical float64) Status {
	if canonical < thresholdLow {
		return Status{
			Label:    "Hypoglycémie",
			Category: CategoryLow,
			Severity: SeverityCritical,
			Color:    "#dc2626",
			BgColor:  "#fef2f2",
		}
	}
	if canonical <= thresholdHigh {
		return Status{
			Label:    "Normal",
			Category: CategoryNormal,
			Severity: SeverityNormal,
			Color:    "#16a34a",
			BgColor:  "#f0fdf4",
		}
	}
	if canonical <= thresholdVery {
		return Status{
			Label:    "Élevé",
			Category: CategoryHigh,
			Severity: SeverityWarning,
			Color:    "#ea580c",
			BgColor:  "#fff7ed",
		}
	}
	return Status{
		Label:    "Très élevé",
		Category: CategoryVeryHigh,
		Severity: SeverityCritical,
		Color:    "#dc2626",
		BgColor:  "#fef2f2",
	}
}
