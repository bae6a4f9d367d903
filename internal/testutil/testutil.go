package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SteampunkGill/readmemory/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, foreign keys enabled and WAL mode.
func NewTestDB(t *testing.T) *sql.DB {
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	return d.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
