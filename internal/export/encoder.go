// Package export serializes reading sets into portable CSV or JSON
// documents. It never touches the filesystem; writing and sharing are the
// file sink's job.
package export

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mlefevre/diabecare/internal/domain"
	apperrors "github.com/mlefevre/diabecare/internal/errors"
	"github.com/mlefevre/diabecare/internal/glycemia"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Options is the closed export configuration. All fields are explicit; there
// is no open-ended option map.
type Options struct {
	Format        Format
	Unit          domain.Unit
	IncludeNotes  bool
	IncludeStatus bool
	Destination   string // opaque hint passed to the file sink
}

// Document is one encoded export: the content plus a suggested filename and
// mime type for the file sink.
type Document struct {
	Content  string
	Filename string
	MimeType string
}

// PeriodSpan is the calendar-date span of an exported set.
type PeriodSpan struct {
	From string
	To   string
}

// Statistics summarizes an exported reading set in the requested unit.
type Statistics struct {
	Count              int
	Min                float64
	Max                float64
	Avg                float64
	Unit               domain.Unit
	StatusDistribution map[glycemia.Category]int
	Period             PeriodSpan
}

func validateOptions(opts Options) error {
	switch opts.Format {
	case FormatCSV, FormatJSON:
	default:
		return apperrors.NewEncodingError("Format d'export invalide")
	}
	switch opts.Unit {
	case domain.UnitMgDL, domain.UnitMmolL:
	default:
		return apperrors.NewEncodingError("Unité invalide")
	}
	return nil
}

// Encode serializes readings into a document. The input is defensively
// re-sorted by date descending regardless of caller order. An empty set or
// unsupported format/unit is an encoding error, raised before any sink call.
func Encode(readings []domain.Reading, opts Options) (*Document, error) {
	if len(readings) == 0 {
		return nil, apperrors.NewEncodingError("Aucune donnée à exporter")
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	sorted := sortedByDateDesc(readings)

	var content, ext, mimeType string
	switch opts.Format {
	case FormatCSV:
		content = encodeCSV(sorted, opts)
		ext = "csv"
		mimeType = "text/csv"
	case FormatJSON:
		encoded, err := encodeJSON(sorted, opts)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrorTypeEncoding, "ENCODING", "Erreur d'encodage JSON")
		}
		content = encoded
		ext = "json"
		mimeType = "application/json"
	}

	return &Document{
		Content:  content,
		Filename: "glycemie_" + time.Now().Format("2006-01-02") + "." + ext,
		MimeType: mimeType,
	}, nil
}

func sortedByDateDesc(readings []domain.Reading) []domain.Reading {
	sorted := make([]domain.Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatTime(t time.Time) string {
	return t.Format("15:04")
}

// formatValue renders a display value with the unit's rounding convention:
// mg/dL values print as plain numbers, mmol/L with one decimal.
func formatValue(canonical float64, unit domain.Unit) string {
	if unit == domain.UnitMmolL {
		return strconv.FormatFloat(glycemia.MgToMmol(canonical), 'f', 1, 64)
	}
	return strconv.FormatFloat(canonical, 'f', -1, 64)
}

// escapeField applies minimal RFC 4180 quoting: only fields containing a
// comma, quote or newline are wrapped, with inner quotes doubled.
func escapeField(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

func encodeCSV(readings []domain.Reading, opts Options) string {
	headers := []string{"Date", "Heure", "Glycémie (" + string(opts.Unit) + ")"}
	if opts.IncludeStatus {
		headers = append(headers, "Statut")
	}
	if opts.IncludeNotes {
		headers = append(headers, "Notes")
	}

	lines := make([]string, 0, len(readings)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, r := range readings {
		row := []string{
			formatDate(r.Date),
			formatTime(r.Date),
			formatValue(r.Value, opts.Unit),
		}
		if opts.IncludeStatus {
			// Status is always computed against the canonical value; the
			// thresholds are mg/dL-specific.
			row = append(row, glycemia.Classify(r.Value).Label)
		}
		if opts.IncludeNotes {
			row = append(row, r.Notes)
		}

		escaped := make([]string, len(row))
		for i, field := range row {
			escaped[i] = escapeField(field)
		}
		lines = append(lines, strings.Join(escaped, ","))
	}

	return strings.Join(lines, "\n")
}

// jsonReading is one exported reading. Optional keys are omitted entirely
// when disabled or absent — never emitted as null.
type jsonReading struct {
	Date           string      `json:"date"`
	Time           string      `json:"time"`
	Value          interface{} `json:"value"`
	Unit           domain.Unit `json:"unit"`
	Status         string      `json:"status,omitempty"`
	StatusCategory string      `json:"statusCategory,omitempty"`
	Notes          string      `json:"notes,omitempty"`
}

type jsonDocument struct {
	ExportDate    string        `json:"exportDate"`
	Unit          domain.Unit   `json:"unit"`
	TotalReadings int           `json:"totalReadings"`
	Readings      []jsonReading `json:"readings"`
}

func encodeJSON(readings []domain.Reading, opts Options) (string, error) {
	doc := jsonDocument{
		ExportDate:    time.Now().UTC().Format(time.RFC3339),
		Unit:          opts.Unit,
		TotalReadings: len(readings),
		Readings:      make([]jsonReading, 0, len(readings)),
	}

	for _, r := range readings {
		var value interface{}
		if opts.Unit == domain.UnitMmolL {
			value = glycemia.MgToMmol(r.Value)
		} else {
			value = r.Value
		}

		jr := jsonReading{
			Date:  formatDate(r.Date),
			Time:  formatTime(r.Date),
			Value: value,
			Unit:  opts.Unit,
		}
		if opts.IncludeStatus {
			status := glycemia.Classify(r.Value)
			jr.Status = status.Label
			jr.StatusCategory = string(status.Category)
		}
		if opts.IncludeNotes {
			jr.Notes = r.Notes
		}
		doc.Readings = append(doc.Readings, jr)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// round applies the requested unit's display rounding to a statistic.
func round(value float64, unit domain.Unit) float64 {
	if unit == domain.UnitMmolL {
		return math.Round(value*10) / 10
	}
	return math.Round(value)
}

// CalculateStatistics summarizes readings in the requested unit. The period
// span assumes the input is already sorted date-descending, as Encode and the
// repository guarantee. Returns nil for an empty set.
func CalculateStatistics(readings []domain.Reading, unit domain.Unit) *Statistics {
	if len(readings) == 0 {
		return nil
	}

	min, max, sum := 0.0, 0.0, 0.0
	distribution := make(map[glycemia.Category]int)
	for i, r := range readings {
		value := r.Value
		if unit == domain.UnitMmolL {
			value = glycemia.Convert(r.Value, domain.UnitMgDL, domain.UnitMmolL)
		}
		if i == 0 || value < min {
			min = value
		}
		if i == 0 || value > max {
			max = value
		}
		sum += value

		distribution[glycemia.Classify(r.Value).Category]++
	}

	return &Statistics{
		Count:              len(readings),
		Min:                round(min, unit),
		Max:                round(max, unit),
		Avg:                round(sum/float64(len(readings)), unit),
		Unit:               unit,
		StatusDistribution: distribution,
		Period: PeriodSpan{
			From: formatDate(readings[len(readings)-1].Date),
			To:   formatDate(readings[0].Date),
		},
	}
}
