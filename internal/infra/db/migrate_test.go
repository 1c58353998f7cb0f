//go:build unit

package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		assert.Equal(t, i+1, m.version, "versions are contiguous and sorted: %s", m.name)
		assert.NotEmpty(t, strings.TrimSpace(m.sql), m.name)
	}

	assert.Contains(t, migrations[0].sql, "CREATE TABLE IF NOT EXISTS notifications")
	assert.Contains(t, migrations[1].sql, "pg_notify('inbox_'")
}
