// Package progress tracks per-character answer tallies and mastery.
package progress

import "time"

// MasteryThreshold is the minimum number of correct answers for mastery.
const MasteryThreshold = 3

// Entry is the answer tally for one character.
type Entry struct {
	CharacterID    string
	CorrectCount   int
	IncorrectCount int
	LastReviewedAt time.Time
	Mastered       bool
}

// Attempts returns the total number of recorded answers.
func (e Entry) Attempts() int {
	return e.CorrectCount + e.IncorrectCount
}

// Weak reports whether the character needs more study: never answered,
// or answered wrong more often than right.
func (e Entry) Weak() bool {
	return e.Attempts() == 0 || e.IncorrectCount > e.CorrectCount
}

// Status returns the dashboard bucket for the entry.
func (e Entry) Status() Status {
	switch {
	case e.Mastered:
		return StatusMastered
	case e.Attempts() > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// IsMastered applies the mastery rule. Mastery can be lost: it is
// recomputed from the counts after every answer.
func IsMastered(correct, incorrect int) bool {
	return correct >= MasteryThreshold && correct > incorrect
}

// Status buckets a character for display.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusMastered
)

func (s Status) String() string {
	switch s {
	case StatusMastered:
		return "Mastered"
	case StatusInProgress:
		return "In Progress"
	default:
		return "Not Started"
	}
}
