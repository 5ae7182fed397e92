package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// BookmarkRepo manages the set of bookmarked question IDs.
type BookmarkRepo struct {
	db *sqlx.DB
}

// Toggle flips the bookmark state for a question and returns the new state.
func (r *BookmarkRepo) Toggle(ctx context.Context, questionID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM bookmarks WHERE question_id = ?", questionID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if deleted > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO bookmarks (question_id, created_at) VALUES (?, ?)",
		questionID, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("insert bookmark: %w", err)
	}
	return true, nil
}

// IDs returns the set of bookmarked question IDs.
func (r *BookmarkRepo) IDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids,
		"SELECT question_id FROM bookmarks ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("select bookmarks: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
