package notify

import (
	"context"

	"github.com/mlefevre/diabecare/internal/domain"
	"github.com/mlefevre/diabecare/internal/logger"
)

// NopScheduler is used when no notification channel is configured. Reminder
// CRUD still works; nothing fires.
type NopScheduler struct{}

func (NopScheduler) ScheduleAll(ctx context.Context, active []domain.Reminder) error {
	logger.Debug("No notification channel configured", "active", len(active))
	return nil
}

func (NopScheduler) CancelAll() {}

var _ domain.Scheduler = NopScheduler{}
