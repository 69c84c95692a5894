package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefevre/diabecare/internal/domain"
	apperrors "github.com/mlefevre/diabecare/internal/errors"
	"github.com/mlefevre/diabecare/internal/glycemia"
)

func testReadings() []domain.Reading {
	return []domain.Reading{
		{
			ID:    "a",
			Value: 180,
			Unit:  domain.UnitMgDL,
			Date:  time.Date(2025, 6, 14, 8, 30, 0, 0, time.Local),
			Time:  "08:30",
		},
		{
			ID:    "b",
			Value: 95,
			Unit:  domain.UnitMgDL,
			Date:  time.Date(2025, 6, 15, 19, 5, 0, 0, time.Local),
			Time:  "19:05",
			Notes: "après repas, un peu fatigué",
		},
	}
}

func TestEncodeEmptySet(t *testing.T) {
	_, err := Encode(nil, Options{Format: FormatCSV, Unit: domain.UnitMgDL})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEncoding))
}

func TestEncodeInvalidOptions(t *testing.T) {
	readings := testReadings()

	_, err := Encode(readings, Options{Format: Format("xml"), Unit: domain.UnitMgDL})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEncoding))

	_, err = Encode(readings, Options{Format: FormatCSV, Unit: domain.Unit("mol/L")})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEncoding))
}

func TestEncodeCSVColumns(t *testing.T) {
	doc, err := Encode(testReadings(), Options{
		Format:        FormatCSV,
		Unit:          domain.UnitMgDL,
		IncludeNotes:  false,
		IncludeStatus: true,
	})
	require.NoError(t, err)

	lines := strings.Split(doc.Content, "\n")
	require.Len(t, lines, 3, "header plus two data rows")

	assert.Equal(t, "Date,Heure,Glycémie (mg/dL),Statut", lines[0])

	// Defensive re-sort: the newer reading comes first even though the input
	// listed it second.
	assert.Equal(t, "15/06/2025,19:05,95,Normal", lines[1])
	assert.Equal(t, "14/06/2025,08:30,180,Élevé", lines[2])
}

func TestEncodeCSVMmol(t *testing.T) {
	doc, err := Encode(testReadings(), Options{
		Format: FormatCSV,
		Unit:   domain.UnitMmolL,
	})
	require.NoError(t, err)

	lines := strings.Split(doc.Content, "\n")
	assert.Equal(t, "Date,Heure,Glycémie (mmol/L)", lines[0])
	assert.Equal(t, "15/06/2025,19:05,5.3", lines[1])
	assert.Equal(t, "14/06/2025,08:30,10.0", lines[2])
}

func TestEncodeCSVEscaping(t *testing.T) {
	readings := []domain.Reading{
		{
			ID:    "c",
			Value: 110,
			Unit:  domain.UnitMgDL,
			Date:  time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local),
			Notes: `sport, puis repas "léger"` + "\navec dessert",
		},
	}

	doc, err := Encode(readings, Options{
		Format:       FormatCSV,
		Unit:         domain.UnitMgDL,
		IncludeNotes: true,
	})
	require.NoError(t, err)

	want := `"sport, puis repas ""léger""` + "\navec dessert\""
	assert.Contains(t, doc.Content, want)
	// Unquoted fields stay unquoted.
	assert.Contains(t, doc.Content, "15/06/2025,12:00,110,")
}

func TestEncodeJSONShape(t *testing.T) {
	doc, err := Encode(testReadings(), Options{
		Format:        FormatJSON,
		Unit:          domain.UnitMgDL,
		IncludeNotes:  true,
		IncludeStatus: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", doc.MimeType)

	var parsed struct {
		ExportDate    string                   `json:"exportDate"`
		Unit          string                   `json:"unit"`
		TotalReadings int                      `json:"totalReadings"`
		Readings      []map[string]interface{} `json:"readings"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc.Content), &parsed))

	assert.NotEmpty(t, parsed.ExportDate)
	assert.Equal(t, "mg/dL", parsed.Unit)
	assert.Equal(t, 2, parsed.TotalReadings)
	require.Len(t, parsed.Readings, 2)

	first := parsed.Readings[0]
	assert.Equal(t, "15/06/2025", first["date"])
	assert.Equal(t, "19:05", first["time"])
	assert.Equal(t, 95.0, first["value"])
	assert.Equal(t, "Normal", first["status"])
	assert.Equal(t, "normal", first["statusCategory"])
	assert.Equal(t, "après repas, un peu fatigué", first["notes"])

	// The first-sorted reading has no notes: the key must be absent, not null.
	second := parsed.Readings[1]
	_, hasNotes := second["notes"]
	assert.False(t, hasNotes, "empty notes must omit the key entirely")
}

func TestEncodeJSONOmitsDisabledKeys(t *testing.T) {
	doc, err := Encode(testReadings(), Options{
		Format:        FormatJSON,
		Unit:          domain.UnitMmolL,
		IncludeNotes:  false,
		IncludeStatus: false,
	})
	require.NoError(t, err)

	var parsed struct {
		Readings []map[string]interface{} `json:"readings"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc.Content), &parsed))

	for _, r := range parsed.Readings {
		_, hasStatus := r["status"]
		_, hasCategory := r["statusCategory"]
		_, hasNotes := r["notes"]
		assert.False(t, hasStatus)
		assert.False(t, hasCategory)
		assert.False(t, hasNotes)
	}

	// mmol/L values carry one decimal.
	assert.Equal(t, 5.3, parsed.Readings[0]["value"])
}

func TestDocumentFilename(t *testing.T) {
	doc, err := Encode(testReadings(), Options{Format: FormatCSV, Unit: domain.UnitMgDL})
	require.NoError(t, err)

	want := "glycemie_" + time.Now().Format("2006-01-02") + ".csv"
	assert.Equal(t, want, doc.Filename)
	assert.Equal(t, "text/csv", doc.MimeType)
}

func TestCalculateStatistics(t *testing.T) {
	readings := []domain.Reading{
		{Value: 210, Unit: domain.UnitMgDL, Date: time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)},
		{Value: 95, Unit: domain.UnitMgDL, Date: time.Date(2025, 6, 13, 9, 0, 0, 0, time.Local)},
		{Value: 65, Unit: domain.UnitMgDL, Date: time.Date(2025, 6, 11, 9, 0, 0, 0, time.Local)},
	}

	stats := CalculateStatistics(readings, domain.UnitMgDL)
	require.NotNil(t, stats)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 65.0, stats.Min)
	assert.Equal(t, 210.0, stats.Max)
	// (210 + 95 + 65) / 3 = 123.33 -> 123
	assert.Equal(t, 123.0, stats.Avg)
	assert.Equal(t, map[glycemia.Category]int{
		glycemia.CategoryVeryHigh: 1,
		glycemia.CategoryNormal:   1,
		glycemia.CategoryLow:      1,
	}, stats.StatusDistribution)
	assert.Equal(t, "11/06/2025", stats.Period.From)
	assert.Equal(t, "15/06/2025", stats.Period.To)
}

func TestCalculateStatisticsMmol(t *testing.T) {
	readings := []domain.Reading{
		{Value: 180, Unit: domain.UnitMgDL, Date: time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)},
		{Value: 90, Unit: domain.UnitMgDL, Date: time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local)},
	}

	stats := CalculateStatistics(readings, domain.UnitMmolL)
	require.NotNil(t, stats)

	assert.Equal(t, 5.0, stats.Min)
	assert.Equal(t, 10.0, stats.Max)
	assert.Equal(t, 7.5, stats.Avg)
	// Distribution is classified against the canonical values, not the
	// converted ones.
	assert.Equal(t, 1, stats.StatusDistribution[glycemia.CategoryHigh])
	assert.Equal(t, 1, stats.StatusDistribution[glycemia.CategoryNormal])
}

func TestCalculateStatisticsEmpty(t *testing.T) {
	assert.Nil(t, CalculateStatistics(nil, domain.UnitMgDL))
}
