package store

import (
	"path/filepath"
	"testing"

	"github.com/isvaryam/assistant/internal/domain"
	"github.com/isvaryam/assistant/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenRunsMigrations(t *testing.T) {
	db := openTestDB(t)

	var count int
	err := db.SQL().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.db")

	db, err := Open(path, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening must not re-apply migrations
	db, err = Open(path, logging.Nop())
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.SQL().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestFeedbackSave(t *testing.T) {
	fs := NewFeedbackStore(openTestDB(t))

	err := fs.Save(domain.Feedback{
		UserID:  "u1",
		Payload: `{"rating": 5, "comment": "great oils"}`,
	})
	require.NoError(t, err)

	n, err := fs.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFeedbackRecent(t *testing.T) {
	fs := NewFeedbackStore(openTestDB(t))

	require.NoError(t, fs.Save(domain.Feedback{UserID: "u1", Payload: `{"n":1}`}))
	require.NoError(t, fs.Save(domain.Feedback{UserID: "u2", Payload: `{"n":2}`}))

	recent, err := fs.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	for _, fb := range recent {
		assert.NotEmpty(t, fb.ID)
		assert.NotEmpty(t, fb.Payload)
		assert.False(t, fb.CreatedAt.IsZero())
	}
}
