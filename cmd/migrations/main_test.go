package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFileName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000001_init.up.sql", "000001_init.down.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}

	name, err := migrationFileName(dir, "init.up")
	require.NoError(t, err)
	assert.Equal(t, "000001_init.up.sql", name)

	name, err = migrationFileName(dir, "down")
	require.NoError(t, err)
	assert.Equal(t, "000001_init.down.sql", name)

	_, err = migrationFileName(dir, "notes")
	assert.Error(t, err)
}

func TestMigrationsShipped(t *testing.T) {
	base := filepath.Join("..", "..", "internal", "adapters", "repository", "postgres", "migrations")
	content, err := migrationFileContent(base, "init.up")
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE")
}
