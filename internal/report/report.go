// Package report decides what happens to failures the application
// swallows. Every degrade-to-empty path goes through a domain.ErrorReporter,
// so the policy lives here and nowhere else.
package report

import (
	"context"
	"sync"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

// Compile-time interface check.
var _ domain.ErrorReporter = (*LogReporter)(nil)

// Entry is one reported failure.
type Entry struct {
	Op  string
	Err error
}

// LogReporter logs every failure at error level and keeps the most recent
// ones so a front-end may show them if the policy ever changes.
type LogReporter struct {
	mu     sync.Mutex
	log    *logger.Logger
	recent []Entry
	limit  int
	total  int
}

// NewLogReporter creates a reporter that remembers up to limit entries.
func NewLogReporter(log *logger.Logger, limit int) *LogReporter {
	if limit <= 0 {
		limit = 20
	}
	return &LogReporter{log: log, limit: limit}
}

// Report logs err for op.
func (r *LogReporter) Report(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	r.log.Error("%s failed: %v", op, err)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.recent = append(r.recent, Entry{Op: op, Err: err})
	if len(r.recent) > r.limit {
		r.recent = r.recent[len(r.recent)-r.limit:]
	}
}

// Total returns how many failures were reported.
func (r *LogReporter) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Recent returns the remembered entries, oldest first.
func (r *LogReporter) Recent() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.recent))
	copy(out, r.recent)
	return out
}
