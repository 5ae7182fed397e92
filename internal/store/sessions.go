package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/medprep/internal/session"
)

// SessionRecord is a persisted completed session.
type SessionRecord struct {
	ID              string
	Mode            string
	StartedAt       time.Time
	EndedAt         time.Time
	TotalQuestions  int
	CorrectAnswers  int
	Accuracy        int
	DurationSeconds int
}

// AnswerRecord is a persisted answer with its question attributes
// denormalized for aggregation.
type AnswerRecord struct {
	SessionID        string
	QuestionID       string
	Category         string
	Difficulty       string
	SelectedOption   string
	IsCorrect        bool
	TimeSpentSeconds int
	AnsweredAt       time.Time
}

// CategoryAggregate is the per-category answer tally.
type CategoryAggregate struct {
	Category string
	Total    int
	Correct  int
}

// SessionRepo reads and writes sessions and their answers.
type SessionRepo struct {
	db *sqlx.DB
}

// sessionRow is the raw table shape; timestamps are unix seconds.
type sessionRow struct {
	ID              string `db:"id"`
	Mode            string `db:"mode"`
	StartedAt       int64  `db:"started_at"`
	EndedAt         int64  `db:"ended_at"`
	TotalQuestions  int    `db:"total_questions"`
	CorrectAnswers  int    `db:"correct_answers"`
	Accuracy        int    `db:"accuracy"`
	DurationSeconds int    `db:"duration_seconds"`
}

// SaveSession appends a completed session and its answer records in one
// transaction. Implements the session machine's Sink.
func (r *SessionRepo) SaveSession(s *session.Session, summary *session.Summary) error {
	byID := make(map[string]struct {
		category   string
		difficulty string
	}, len(s.Questions))
	for _, q := range s.Questions {
		byID[q.ID] = struct {
			category   string
			difficulty string
		}{q.Category, string(q.Difficulty)}
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, mode, started_at, ended_at, total_questions,
			correct_answers, accuracy, duration_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, string(s.Config.Mode), s.StartTime.Unix(), s.EndTime.Unix(),
		summary.TotalQuestions, summary.CorrectAnswers, summary.Accuracy,
		int(summary.TotalTime.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for _, rec := range s.AnswerRecords {
		attrs := byID[rec.QuestionID]
		_, err = tx.Exec(
			`INSERT INTO answers (session_id, question_id, category, difficulty,
				selected_option, is_correct, time_spent_seconds, answered_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, rec.QuestionID, attrs.category, attrs.difficulty,
			rec.SelectedOption, rec.IsCorrect, int(rec.TimeSpent.Seconds()),
			rec.Timestamp.Unix(),
		)
		if err != nil {
			return fmt.Errorf("insert answer %s: %w", rec.QuestionID, err)
		}
	}

	return tx.Commit()
}

// Sessions returns persisted sessions, most recent first. limit 0 = all.
func (r *SessionRepo) Sessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	query := "SELECT * FROM sessions ORDER BY started_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	var rows []sessionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	out := make([]SessionRecord, len(rows))
	for i, row := range rows {
		out[i] = SessionRecord{
			ID:              row.ID,
			Mode:            row.Mode,
			StartedAt:       time.Unix(row.StartedAt, 0),
			EndedAt:         time.Unix(row.EndedAt, 0),
			TotalQuestions:  row.TotalQuestions,
			CorrectAnswers:  row.CorrectAnswers,
			Accuracy:        row.Accuracy,
			DurationSeconds: row.DurationSeconds,
		}
	}
	return out, nil
}

// AnsweredQuestionIDs returns every question ID with at least one answer.
func (r *SessionRepo) AnsweredQuestionIDs(ctx context.Context) (map[string]bool, error) {
	return r.questionIDSet(ctx, "SELECT DISTINCT question_id FROM answers")
}

// IncorrectQuestionIDs returns every question ID with at least one
// incorrect answer.
func (r *SessionRepo) IncorrectQuestionIDs(ctx context.Context) (map[string]bool, error) {
	return r.questionIDSet(ctx, "SELECT DISTINCT question_id FROM answers WHERE is_correct = 0")
}

func (r *SessionRepo) questionIDSet(ctx context.Context, query string) (map[string]bool, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("select question ids: %w", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// LastAttemptTimes returns the most recent answer time per question.
func (r *SessionRepo) LastAttemptTimes(ctx context.Context) (map[string]time.Time, error) {
	var rows []struct {
		QuestionID string `db:"question_id"`
		Last       int64  `db:"last"`
	}
	err := r.db.SelectContext(ctx, &rows,
		"SELECT question_id, MAX(answered_at) AS last FROM answers GROUP BY question_id")
	if err != nil {
		return nil, fmt.Errorf("select last attempts: %w", err)
	}
	out := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		out[row.QuestionID] = time.Unix(row.Last, 0)
	}
	return out, nil
}

// CategoryAggregates returns the all-time per-category answer tallies.
func (r *SessionRepo) CategoryAggregates(ctx context.Context) ([]CategoryAggregate, error) {
	var rows []struct {
		Category string `db:"category"`
		Total    int    `db:"total"`
		Correct  int    `db:"correct"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT category, COUNT(*) AS total, COALESCE(SUM(is_correct), 0) AS correct
		 FROM answers GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("select category aggregates: %w", err)
	}
	out := make([]CategoryAggregate, len(rows))
	for i, row := range rows {
		out[i] = CategoryAggregate{Category: row.Category, Total: row.Total, Correct: row.Correct}
	}
	return out, nil
}

// Answers returns every persisted answer, oldest first. limit 0 = all.
func (r *SessionRepo) Answers(ctx context.Context, limit int) ([]AnswerRecord, error) {
	query := `SELECT session_id, question_id, category, difficulty,
		selected_option, is_correct, time_spent_seconds, answered_at
		FROM answers ORDER BY answered_at ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	var rows []struct {
		SessionID        string `db:"session_id"`
		QuestionID       string `db:"question_id"`
		Category         string `db:"category"`
		Difficulty       string `db:"difficulty"`
		SelectedOption   string `db:"selected_option"`
		IsCorrect        bool   `db:"is_correct"`
		TimeSpentSeconds int    `db:"time_spent_seconds"`
		AnsweredAt       int64  `db:"answered_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select answers: %w", err)
	}
	out := make([]AnswerRecord, len(rows))
	for i, row := range rows {
		out[i] = AnswerRecord{
			SessionID:        row.SessionID,
			QuestionID:       row.QuestionID,
			Category:         row.Category,
			Difficulty:       row.Difficulty,
			SelectedOption:   row.SelectedOption,
			IsCorrect:        row.IsCorrect,
			TimeSpentSeconds: row.TimeSpentSeconds,
			AnsweredAt:       time.Unix(row.AnsweredAt, 0),
		}
	}
	return out, nil
}
