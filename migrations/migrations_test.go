package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFS_ContainsOrderedGooseMigrations(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_keystores.sql", "00002_unlock_limiter.sql"}, names)

	for _, n := range names {
		raw, err := fs.ReadFile(FS, n)
		require.NoError(t, err)
		require.True(t, strings.Contains(string(raw), "-- +goose Up"), n)
		require.True(t, strings.Contains(string(raw), "-- +goose Down"), n)
	}
}
