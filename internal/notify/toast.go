package notify

import (
	"log/slog"

	"github.com/mlefevre/diabecare/internal/domain"
)

// LogToaster routes fire-and-forget user notifications to the structured
// logger. A graphical surface would replace this without touching callers.
type LogToaster struct {
	logger *slog.Logger
}

// NewLogToaster creates a toaster over the given logger.
func NewLogToaster(logger *slog.Logger) *LogToaster {
	return &LogToaster{logger: logger}
}

func (t *LogToaster) Success(msg string) {
	t.logger.Info("✅ " + msg)
}

func (t *LogToaster) Warning(msg string) {
	t.logger.Warn("⚠️ " + msg)
}

func (t *LogToaster) Error(msg string) {
	t.logger.Error("❌ " + msg)
}

var _ domain.Toaster = (*LogToaster)(nil)
