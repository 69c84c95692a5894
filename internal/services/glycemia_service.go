package services

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mlefevre/diabecare/internal/domain"
	apperrors "github.com/mlefevre/diabecare/internal/errors"
	"github.com/mlefevre/diabecare/internal/glycemia"
	"github.com/mlefevre/diabecare/internal/logger"
)

// ReadingsKey is the persistence key for the reading collection.
const ReadingsKey = "glycemia_readings"

// storedReading is the persisted shape of a reading: dates travel as RFC 3339
// strings and are re-hydrated on read.
type storedReading struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Date  string  `json:"date"`
	Time  string  `json:"time"`
	Notes string  `json:"notes,omitempty"`
}

// GlycemiaService is the single source of truth for readings. It owns an
// in-memory cache over the key-value store; every mutation is a whole
// collection read-modify-write. Mutations are not safe to issue concurrently
// (last write wins on the whole collection) — callers serialize them.
type GlycemiaService struct {
	store  domain.KVStore
	cache  []domain.Reading
	loaded bool
}

// NewGlycemiaService creates a reading service over the given store.
func NewGlycemiaService(store domain.KVStore) *GlycemiaService {
	return &GlycemiaService{store: store}
}

// ReadingUpdate is a partial-field update. Nil fields are left untouched.
// Value is in the canonical unit and is not re-validated against bounds here;
// full validation only happens at Add.
type ReadingUpdate struct {
	Value *float64
	Unit  *domain.Unit
	Date  *time.Time
	Time  *string
	Notes *string
}

func (s *GlycemiaService) load(ctx context.Context) ([]domain.Reading, error) {
	if s.loaded {
		return s.cache, nil
	}

	raw, ok, err := s.store.GetItem(ctx, ReadingsKey)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if !ok || raw == "" {
		s.cache = nil
		s.loaded = true
		return s.cache, nil
	}

	var stored []storedReading
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	readings := make([]domain.Reading, 0, len(stored))
	for _, sr := range stored {
		date, err := time.Parse(time.RFC3339, sr.Date)
		if err != nil {
			// A single malformed record must not take the collection down
			// with it; drop it and keep going.
			logger.Warn("Dropping reading with unparseable date", "id", sr.ID, "date", sr.Date)
			continue
		}
		unit := domain.Unit(sr.Unit)
		if unit != domain.UnitMgDL && unit != domain.UnitMmolL {
			unit = domain.CanonicalUnit
		}
		readings = append(readings, domain.Reading{
			ID:    sr.ID,
			Value: sr.Value,
			Unit:  unit,
			Date:  date,
			Time:  sr.Time,
			Notes: sr.Notes,
		})
	}

	s.cache = readings
	s.loaded = true
	return s.cache, nil
}

func (s *GlycemiaService) persist(ctx context.Context, readings []domain.Reading) error {
	stored := make([]storedReading, len(readings))
	for i, r := range readings {
		stored[i] = storedReading{
			ID:    r.ID,
			Value: r.Value,
			Unit:  string(r.Unit),
			Date:  r.Date.Format(time.RFC3339),
			Time:  r.Time,
			Notes: r.Notes,
		}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if err := s.store.SetItem(ctx, ReadingsKey, string(data)); err != nil {
		return apperrors.NewPersistenceError(err)
	}

	s.cache = readings
	s.loaded = true
	return nil
}

// Reload drops the cache and re-reads the collection from the store.
func (s *GlycemiaService) Reload(ctx context.Context) error {
	s.Invalidate()
	_, err := s.load(ctx)
	return err
}

// Invalidate drops the in-memory cache; the next read hits the store.
func (s *GlycemiaService) Invalidate() {
	s.cache = nil
	s.loaded = false
}

// Add validates and normalizes a raw user entry, assigns it a fresh id,
// appends it and persists the collection. The stored value is always
// canonical mg/dL; the entry unit is retained for display only.
func (s *GlycemiaService) Add(ctx context.Context, value float64, unit domain.Unit, date time.Time, timeOfDay, notes string) (domain.Reading, error) {
	if unit == "" {
		unit = domain.CanonicalUnit
	}
	if err := glycemia.Validate(value, unit); err != nil {
		return domain.Reading{}, err
	}

	reading := domain.Reading{
		ID:    uuid.NewString(),
		Value: glycemia.ToCanonical(value, unit),
		Unit:  unit,
		Date:  date,
		Time:  timeOfDay,
		Notes: notes,
	}

	readings, err := s.load(ctx)
	if err != nil {
		return domain.Reading{}, err
	}

	updated := make([]domain.Reading, len(readings), len(readings)+1)
	copy(updated, readings)
	updated = append(updated, reading)

	if err := s.persist(ctx, updated); err != nil {
		return domain.Reading{}, err
	}
	return reading, nil
}

// Update merges partial fields into the record addressed by id. Updating an
// absent id is a silent no-op, matching Remove.
func (s *GlycemiaService) Update(ctx context.Context, id string, upd ReadingUpdate) error {
	readings, err := s.load(ctx)
	if err != nil {
		return err
	}

	updated := make([]domain.Reading, len(readings))
	copy(updated, readings)

	found := false
	for i := range updated {
		if updated[i].ID != id {
			continue
		}
		found = true
		if upd.Value != nil {
			updated[i].Value = *upd.Value
		}
		if upd.Unit != nil {
			updated[i].Unit = *upd.Unit
		}
		if upd.Date != nil {
			updated[i].Date = *upd.Date
		}
		if upd.Time != nil {
			updated[i].Time = *upd.Time
		}
		if upd.Notes != nil {
			updated[i].Notes = *upd.Notes
		}
		break
	}

	if !found {
		return nil
	}
	return s.persist(ctx, updated)
}

// Remove deletes the reading addressed by id. Removing an absent id is a
// silent no-op (idempotent delete).
func (s *GlycemiaService) Remove(ctx context.Context, id string) error {
	readings, err := s.load(ctx)
	if err != nil {
		return err
	}

	updated := make([]domain.Reading, 0, len(readings))
	for _, r := range readings {
		if r.ID != id {
			updated = append(updated, r)
		}
	}
	return s.persist(ctx, updated)
}

// List returns all readings sorted by date descending (most recent first).
// Every consumer relies on this ordering.
func (s *GlycemiaService) List(ctx context.Context) ([]domain.Reading, error) {
	readings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]domain.Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted, nil
}

// Latest returns the most recent reading, or nil if there are none.
func (s *GlycemiaService) Latest(ctx context.Context) (*domain.Reading, error) {
	readings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}
	return &readings[0], nil
}

// Average returns the rounded mean canonical value over the trailing window.
// An empty window yields exactly 0, never NaN, so the result is always safe
// to display and do arithmetic on.
func (s *GlycemiaService) Average(ctx context.Context, windowDays int) (int, error) {
	readings, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)
	sum := 0.0
	count := 0
	for _, r := range readings {
		if !r.Date.Before(cutoff) {
			sum += r.Value
			count++
		}
	}

	if count == 0 {
		return 0, nil
	}
	// Arithmetic mean first, one rounding at the end.
	return int(math.Round(sum / float64(count))), nil
}

// FilterByPeriod returns the readings inside the given period, sorted date
// descending. "day" means since midnight today; week/month/year are rolling
// windows from now.
func (s *GlycemiaService) FilterByPeriod(ctx context.Context, period domain.Period) ([]domain.Reading, error) {
	readings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var cutoff time.Time
	switch period {
	case domain.PeriodDay:
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case domain.PeriodWeek:
		cutoff = now.AddDate(0, 0, -7)
	case domain.PeriodMonth:
		cutoff = now.AddDate(0, -1, 0)
	case domain.PeriodYear:
		cutoff = now.AddDate(-1, 0, 0)
	case domain.PeriodAll:
		return readings, nil
	default:
		return nil, apperrors.NewValidationError("Période invalide")
	}

	filtered := make([]domain.Reading, 0, len(readings))
	for _, r := range readings {
		if !r.Date.Before(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
