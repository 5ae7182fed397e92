// Package gate decides whether an exam simulation may start.
package gate

import (
	"context"
	"fmt"
	"time"
)

// ExamLog is the slice of the store the gate needs.
type ExamLog interface {
	RecordStart(ctx context.Context, at time.Time) error
	CountSince(ctx context.Context, t time.Time) (int, error)
}

// DailyLimitGate admits exam simulations up to a fixed number per
// calendar day. A limit of zero means unlimited.
type DailyLimitGate struct {
	log   ExamLog
	limit int
	now   func() time.Time
}

// NewDailyLimitGate builds a gate over the exam log.
func NewDailyLimitGate(log ExamLog, limit int) *DailyLimitGate {
	return &DailyLimitGate{log: log, limit: limit, now: time.Now}
}

// CanStartExam reports whether another exam simulation is allowed today.
func (g *DailyLimitGate) CanStartExam(ctx context.Context) (bool, error) {
	if g.limit <= 0 {
		return true, nil
	}
	started, err := g.log.CountSince(ctx, startOfDay(g.now()))
	if err != nil {
		return false, fmt.Errorf("count exam starts: %w", err)
	}
	return started < g.limit, nil
}

// RecordExamStart logs that an exam simulation began now.
func (g *DailyLimitGate) RecordExamStart(ctx context.Context) error {
	return g.log.RecordStart(ctx, g.now())
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
