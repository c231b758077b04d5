package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/isvaryam/assistant/internal/domain"
)

// FeedbackStore persists user feedback submissions. It is a
// fire-and-forget sink: the dialogue core never reads it back.
type FeedbackStore struct {
	db *DB
}

// NewFeedbackStore creates a feedback store using the given database.
func NewFeedbackStore(db *DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Save persists a feedback record. A zero ID and CreatedAt are filled in.
func (f *FeedbackStore) Save(fb domain.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}

	_, err := f.db.sql.Exec(
		`INSERT INTO feedback (id, user_id, payload, created_at) VALUES (?, ?, ?, ?)`,
		fb.ID, fb.UserID, fb.Payload, fb.CreatedAt.Format(time.DateTime),
	)
	return err
}

// Count returns the number of stored feedback records.
func (f *FeedbackStore) Count() (int, error) {
	var n int
	err := f.db.sql.QueryRow(`SELECT COUNT(*) FROM feedback`).Scan(&n)
	return n, err
}

// Recent returns the most recent feedback records, newest first.
func (f *FeedbackStore) Recent(limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := f.db.sql.Query(
		`SELECT id, user_id, payload, created_at FROM feedback
		 ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		var createdAt string
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Payload, &createdAt); err != nil {
			continue
		}
		fb.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		out = append(out, fb)
	}
	return out, rows.Err()
}
