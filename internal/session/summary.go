package session

import "time"

// Summary describes a finished or abandoned session.
type Summary struct {
	SessionID string
	Mode      Mode
	StartedAt time.Time
	EndedAt   time.Time
	DeckSize  int
	Answered  int
	Correct   int
}

// Completed reports whether every card was scored.
func (s Summary) Completed() bool {
	return s.DeckSize > 0 && s.Answered == s.DeckSize
}

// Duration returns the session length.
func (s Summary) Duration() time.Duration {
	if s.EndedAt.Before(s.StartedAt) {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Accuracy returns Correct/Answered in [0, 1].
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}
