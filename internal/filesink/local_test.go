package filesink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesDestinationDir(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	sink := NewLocal(base)

	path, err := sink.Write(ctx, "glycemie_2025-06-15.csv", "Date,Heure\n", "text/csv", "diabecare")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "DiabeCare", "glycemie_2025-06-15.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Heure\n", string(content))
}

func TestWriteUnknownDestinationFallsBack(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	sink := NewLocal(base)

	path, err := sink.Write(ctx, "export.json", "{}", "application/json", "somewhere-else")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "export.json"), path)
}
