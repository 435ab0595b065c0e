package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewLocalStorage(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	ref, err := s.Save(ctx, "products/abc123.png", strings.NewReader("not really a png"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "abc123.png", ref)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", ref))
	require.NoError(t, err)
	require.Equal(t, "not really a png", string(data))

	require.NoError(t, s.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, "uploads", ref))
	require.ErrorIs(t, err, os.ErrNotExist)

	// Deleting something that's already gone isn't an error
	require.NoError(t, s.Delete(ctx, "missing.png"))
}
