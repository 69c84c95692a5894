// Package filesink writes export documents to the local filesystem.
package filesink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mlefevre/diabecare/internal/domain"
)

// Local writes files under a base directory, mapping opaque destination
// hints to subdirectories. Unknown hints land in the base directory itself.
type Local struct {
	baseDir string
}

// NewLocal creates a sink rooted at baseDir.
func NewLocal(baseDir string) *Local {
	return &Local{baseDir: baseDir}
}

func (l *Local) resolveDir(destination string) string {
	switch destination {
	case "diabecare":
		return filepath.Join(l.baseDir, "DiabeCare")
	case "documents":
		return filepath.Join(l.baseDir, "Documents")
	case "downloads":
		return filepath.Join(l.baseDir, "Downloads")
	default:
		return l.baseDir
	}
}

// Write stores the content and returns the resulting path. The mime type is
// ignored locally; it matters to sharing sinks.
func (l *Local) Write(ctx context.Context, filename, content, mimeType, destination string) (string, error) {
	dir := l.resolveDir(destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

var _ domain.FileSink = (*Local)(nil)
