package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mlefevre/diabecare/internal/domain"
	apperrors "github.com/mlefevre/diabecare/internal/errors"
)

// RemindersKey is the persistence key for the reminder collection.
const RemindersKey = "reminders"

// ReminderService manages the daily care reminders and keeps the external
// notification scheduler in sync. Every mutation ends with exactly one full
// ScheduleAll call carrying the resulting active set; the scheduler has no
// notion of per-reminder diffing, so partial rescheduling is never attempted.
type ReminderService struct {
	store     domain.KVStore
	scheduler domain.Scheduler
	cache     []domain.Reminder
	loaded    bool
}

// NewReminderService creates a reminder service over the given store and
// scheduler.
func NewReminderService(store domain.KVStore, scheduler domain.Scheduler) *ReminderService {
	return &ReminderService{store: store, scheduler: scheduler}
}

func validReminderType(t domain.ReminderType) bool {
	switch t {
	case domain.ReminderMedication, domain.ReminderMeasurement, domain.ReminderMeal, domain.ReminderExercise:
		return true
	}
	return false
}

func (s *ReminderService) load(ctx context.Context) ([]domain.Reminder, error) {
	if s.loaded {
		return s.cache, nil
	}

	raw, ok, err := s.store.GetItem(ctx, RemindersKey)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if !ok || raw == "" {
		s.cache = nil
		s.loaded = true
		return s.cache, nil
	}

	var reminders []domain.Reminder
	if err := json.Unmarshal([]byte(raw), &reminders); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	s.cache = reminders
	s.loaded = true
	return s.cache, nil
}

func (s *ReminderService) persist(ctx context.Context, reminders []domain.Reminder) error {
	data, err := json.Marshal(reminders)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if err := s.store.SetItem(ctx, RemindersKey, string(data)); err != nil {
		return apperrors.NewPersistenceError(err)
	}

	s.cache = reminders
	s.loaded = true
	return nil
}

// Reload drops the cache and re-reads the collection from the store.
func (s *ReminderService) Reload(ctx context.Context) error {
	s.Invalidate()
	_, err := s.load(ctx)
	return err
}

// Invalidate drops the in-memory cache.
func (s *ReminderService) Invalidate() {
	s.cache = nil
	s.loaded = false
}

// Add creates a reminder and triggers a full notification reschedule.
func (s *ReminderService) Add(ctx context.Context, title, description, timeOfDay string, typ domain.ReminderType, isActive bool) (domain.Reminder, error) {
	if title == "" {
		return domain.Reminder{}, apperrors.NewValidationError("Le titre est requis")
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return domain.Reminder{}, apperrors.NewValidationError("Heure invalide (format HH:MM)")
	}
	if !validReminderType(typ) {
		return domain.Reminder{}, apperrors.NewValidationError("Type de rappel invalide")
	}

	reminder := domain.Reminder{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Time:        timeOfDay,
		IsActive:    isActive,
		Type:        typ,
	}

	reminders, err := s.load(ctx)
	if err != nil {
		return domain.Reminder{}, err
	}

	updated := make([]domain.Reminder, len(reminders), len(reminders)+1)
	copy(updated, reminders)
	updated = append(updated, reminder)

	if err := s.persist(ctx, updated); err != nil {
		return domain.Reminder{}, err
	}
	if err := s.RescheduleAll(ctx); err != nil {
		return domain.Reminder{}, err
	}
	return reminder, nil
}

// ReminderUpdate is a partial-field update. Nil fields are left untouched.
type ReminderUpdate struct {
	Title       *string
	Description *string
	Time        *string
	Type        *domain.ReminderType
}

// Update merges partial fields into the reminder addressed by id and triggers
// a full reschedule. Updating an absent id is a silent no-op and does not
// touch the scheduler.
func (s *ReminderService) Update(ctx context.Context, id string, upd ReminderUpdate) error {
	if upd.Title != nil && *upd.Title == "" {
		return apperrors.NewValidationError("Le titre est requis")
	}
	if upd.Time != nil {
		if _, err := time.Parse("15:04", *upd.Time); err != nil {
			return apperrors.NewValidationError("Heure invalide (format HH:MM)")
		}
	}
	if upd.Type != nil && !validReminderType(*upd.Type) {
		return apperrors.NewValidationError("Type de rappel invalide")
	}

	reminders, err := s.load(ctx)
	if err != nil {
		return err
	}

	updated := make([]domain.Reminder, len(reminders))
	copy(updated, reminders)

	found := false
	for i := range updated {
		if updated[i].ID != id {
			continue
		}
		found = true
		if upd.Title != nil {
			updated[i].Title = *upd.Title
		}
		if upd.Description != nil {
			updated[i].Description = *upd.Description
		}
		if upd.Time != nil {
			updated[i].Time = *upd.Time
		}
		if upd.Type != nil {
			updated[i].Type = *upd.Type
		}
		break
	}
	if !found {
		return nil
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	return s.RescheduleAll(ctx)
}

// Toggle flips a reminder's active flag and triggers a full reschedule.
// Toggling an absent id is a no-op and does not touch the scheduler.
func (s *ReminderService) Toggle(ctx context.Context, id string) error {
	reminders, err := s.load(ctx)
	if err != nil {
		return err
	}

	updated := make([]domain.Reminder, len(reminders))
	copy(updated, reminders)

	found := false
	for i := range updated {
		if updated[i].ID == id {
			updated[i].IsActive = !updated[i].IsActive
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	return s.RescheduleAll(ctx)
}

// Remove deletes a reminder by id (idempotent: an absent id is not an error)
// and triggers a full reschedule with the remaining active set.
func (s *ReminderService) Remove(ctx context.Context, id string) error {
	reminders, err := s.load(ctx)
	if err != nil {
		return err
	}

	updated := make([]domain.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.ID != id {
			updated = append(updated, r)
		}
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	return s.RescheduleAll(ctx)
}

// List returns all reminders sorted by time of day.
func (s *ReminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]domain.Reminder, len(reminders))
	copy(sorted, reminders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return sorted, nil
}

// Active returns the active reminders sorted by time of day.
func (s *ReminderService) Active(ctx context.Context) ([]domain.Reminder, error) {
	reminders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

// Next returns the next active reminder after now today, or the first active
// reminder of tomorrow when none are left today. Nil when nothing is active.
func (s *ReminderService) Next(ctx context.Context, now time.Time) (*domain.Reminder, error) {
	active, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}

	currentTime := now.Format("15:04")
	for i := range active {
		if active[i].Time > currentTime {
			return &active[i], nil
		}
	}
	return &active[0], nil
}

// ByType returns the reminders of the given type.
func (s *ReminderService) ByType(ctx context.Context, typ domain.ReminderType) ([]domain.Reminder, error) {
	reminders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Type == typ {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// RescheduleAll pushes the complete current active set to the scheduler.
// Also called once at startup so persisted reminders survive a restart.
func (s *ReminderService) RescheduleAll(ctx context.Context) error {
	active, err := s.Active(ctx)
	if err != nil {
		return err
	}
	return s.scheduler.ScheduleAll(ctx, active)
}
