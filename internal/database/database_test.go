package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resortdesk/internal/domain"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("resort.db"))
	assert.False(t, IsPostgres("file:x?mode=memory"))
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	db, err := Connect("file:database_test?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, m := range domain.Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
