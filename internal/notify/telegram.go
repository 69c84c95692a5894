// Package notify implements the notification scheduling and toast
// collaborators.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mlefevre/diabecare/internal/domain"
	"github.com/mlefevre/diabecare/internal/logger"
)

// TelegramScheduler delivers daily reminder notifications to a Telegram chat.
// Every ScheduleAll tears down all running triggers and rebuilds one per
// active reminder; it must not be invoked concurrently with itself, which the
// services layer guarantees by serializing reminder mutations.
type TelegramScheduler struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu   sync.Mutex
	done chan struct{}
}

// NewTelegramScheduler authenticates against the Bot API.
func NewTelegramScheduler(token string, chatID int64) (*TelegramScheduler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &TelegramScheduler{bot: bot, chatID: chatID}, nil
}

// ScheduleAll cancels every scheduled notification, then schedules one
// recurring daily trigger per active reminder at its HH:MM.
func (s *TelegramScheduler) ScheduleAll(ctx context.Context, active []domain.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.done = make(chan struct{})

	for _, reminder := range active {
		at, err := time.Parse("15:04", reminder.Time)
		if err != nil {
			// Validated at creation; a bad record here is storage corruption.
			logger.Warn("Skipping reminder with invalid time", "id", reminder.ID, "time", reminder.Time)
			continue
		}
		go s.run(s.done, reminder, at)
	}

	logger.Info("Reminder notifications rescheduled", "active", len(active))
	return nil
}

// CancelAll stops every scheduled trigger.
func (s *TelegramScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *TelegramScheduler) cancelLocked() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

func (s *TelegramScheduler) run(done chan struct{}, reminder domain.Reminder, at time.Time) {
	next := nextOccurrence(time.Now(), at.Hour(), at.Minute())
	for {
		timer := time.NewTimer(time.Until(next))
		select {
		case <-done:
			timer.Stop()
			return
		case <-timer.C:
			s.send(reminder)
			next = next.Add(24 * time.Hour)
		}
	}
}

func (s *TelegramScheduler) send(reminder domain.Reminder) {
	text := "⏰ " + reminder.Title
	if reminder.Description != "" {
		text += "\n" + reminder.Description
	}

	msg := tgbotapi.NewMessage(s.chatID, text)
	if _, err := s.bot.Send(msg); err != nil {
		logger.Error("Failed to send reminder notification", "id", reminder.ID, "error", err)
	}
}

// nextOccurrence returns the next time-of-day occurrence strictly after now.
func nextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

var _ domain.Scheduler = (*TelegramScheduler)(nil)
