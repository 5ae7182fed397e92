package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ExamLogRepo records exam-simulation starts for the admission gate.
type ExamLogRepo struct {
	db *sqlx.DB
}

// RecordStart appends an exam start at the given time.
func (r *ExamLogRepo) RecordStart(ctx context.Context, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO exam_starts (started_at) VALUES (?)", at.Unix())
	if err != nil {
		return fmt.Errorf("insert exam start: %w", err)
	}
	return nil
}

// CountSince returns how many exams were started at or after t.
func (r *ExamLogRepo) CountSince(ctx context.Context, t time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM exam_starts WHERE started_at >= ?", t.Unix())
	if err != nil {
		return 0, fmt.Errorf("count exam starts: %w", err)
	}
	return count, nil
}
