package store

import (
	"context"
	"time"
)

// SessionRecord is one finished or abandoned study session.
type SessionRecord struct {
	ID        string
	Mode      string
	StartedAt time.Time
	EndedAt   time.Time
	DeckSize  int
	Answered  int
	Correct   int
	Completed bool
}

// Duration returns the session length.
func (r SessionRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Accuracy returns Correct/Answered in [0, 1].
func (r SessionRecord) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}

// SessionRepo stores study session history.
type SessionRepo interface {
	// Append records a session.
	Append(ctx context.Context, rec SessionRecord) error

	// Recent returns up to limit sessions, newest first. A limit of 0
	// returns all sessions.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)

	// Prune deletes all but the keep most recent sessions. keep <= 0
	// leaves the table untouched.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every session.
	Clear(ctx context.Context) error
}
