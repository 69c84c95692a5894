// Package chart turns readings into chart-ready daily series. All functions
// are pure and safe to run concurrently over a snapshot.
package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/mlefevre/diabecare/internal/domain"
)

// defaultValue is plotted when a window has no real data at all. It is a
// neutral placeholder, never real data: Count == 0 is the authoritative
// "was this measured" signal and callers must check it.
const defaultValue = 120

// Point is one calendar-day bucket. Count is the number of contributing
// readings; a Count of 0 marks a gap whose Value was filled for plotting.
type Point struct {
	Date  time.Time
	Value int
	Count int
}

// Summary aggregates the real (Count > 0) buckets of a series.
type Summary struct {
	Average int
	Min     int
	Max     int
	Days    int
}

// Single-letter French weekday abbreviations, Sunday first.
var dayLetters = [7]string{"D", "L", "M", "M", "J", "V", "S"}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DailyAverages buckets readings into the last windowDays calendar days
// ending on now's day, oldest first. Each day's value is the rounded mean of
// that day's canonical values. Days without readings are gaps: their Value is
// filled with the midpoint of the nearest earlier and later real days, flat
// when only one neighbor exists, and defaultValue when the whole window is
// empty. Readings with a zero date are excluded rather than aborting.
func DailyAverages(readings []domain.Reading, windowDays int, now time.Time) []Point {
	if windowDays <= 0 {
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(windowDays - 1))

	points := make([]Point, windowDays)
	for i := 0; i < windowDays; i++ {
		date := start.AddDate(0, 0, i)

		sum := 0.0
		count := 0
		for _, r := range readings {
			if r.Date.IsZero() {
				continue
			}
			if sameDay(r.Date, date) {
				sum += r.Value
				count++
			}
		}

		point := Point{Date: date, Count: count}
		if count > 0 {
			point.Value = int(math.Round(sum / float64(count)))
		}
		points[i] = point
	}

	fillGaps(points)
	return points
}

// fillGaps interpolates gap values from their nearest real neighbors. Only
// real buckets feed the interpolation; previously filled gaps do not.
func fillGaps(points []Point) {
	for i := range points {
		if points[i].Count > 0 {
			continue
		}

		prev, hasPrev := 0, false
		for j := i - 1; j >= 0; j-- {
			if points[j].Count > 0 {
				prev, hasPrev = points[j].Value, true
				break
			}
		}

		next, hasNext := 0, false
		for j := i + 1; j < len(points); j++ {
			if points[j].Count > 0 {
				next, hasNext = points[j].Value, true
				break
			}
		}

		switch {
		case hasPrev && hasNext:
			points[i].Value = int(math.Round(float64(prev+next) / 2))
		case hasPrev:
			points[i].Value = prev
		case hasNext:
			points[i].Value = next
		default:
			points[i].Value = defaultValue
		}
	}
}

// Labels renders axis labels for a series. Windows of a week or less get
// single-letter weekday abbreviations; longer windows get day/month numbers.
// The weekday is taken from each bucket's actual date — gaps keep their
// calendar slot, so indices must never be assumed sequential.
func Labels(points []Point, windowDays int) []string {
	labels := make([]string, len(points))
	for i, p := range points {
		if windowDays <= 7 {
			labels[i] = dayLetters[int(p.Date.Weekday())]
		} else {
			labels[i] = fmt.Sprintf("%d/%d", p.Date.Day(), int(p.Date.Month()))
		}
	}
	return labels
}

// Summarize computes display statistics over the real buckets of a series.
// Filled gaps are excluded; a series with no real data yields a zero Summary.
func Summarize(points []Point) Summary {
	sum := 0
	s := Summary{}
	for _, p := range points {
		if p.Count == 0 {
			continue
		}
		if s.Days == 0 || p.Value < s.Min {
			s.Min = p.Value
		}
		if s.Days == 0 || p.Value > s.Max {
			s.Max = p.Value
		}
		sum += p.Value
		s.Days++
	}
	if s.Days > 0 {
		s.Average = int(math.Round(float64(sum) / float64(s.Days)))
	}
	return s
}
