package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/community-board/internal/core/domain"
)

func TestStorage_SaveLoadRemove(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "state")
	s, err := New(dir)
	require.NoError(t, err)

	_, err = s.Load(ctx, "app")
	assert.True(t, errors.Is(err, domain.ErrStateNotFound))

	require.NoError(t, s.Save(ctx, "app", []byte("one")))
	require.NoError(t, s.Save(ctx, "app", []byte("two")))

	got, err := s.Load(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "app.json", entries[0].Name())

	require.NoError(t, s.Remove(ctx, "app"))
	require.NoError(t, s.Remove(ctx, "app"))
	_, err = s.Load(ctx, "app")
	assert.True(t, errors.Is(err, domain.ErrStateNotFound))
}

func TestStorage_RejectsPathKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		assert.Error(t, s.Save(context.Background(), key, []byte("x")), "key %q", key)
	}
}

func TestStorage_Ping(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, s.Ping(context.Background()))
}
