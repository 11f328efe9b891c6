package progress

import "github.com/abhisek/kanaflash/internal/catalog"

// NeedsPracticeLimit caps the needs-practice list on the dashboard.
const NeedsPracticeLimit = 10

// ScriptStats is the mastery breakdown for one script.
type ScriptStats struct {
	Script   catalog.Script
	Mastered int
	Total    int
}

// Fraction returns Mastered/Total, or 0 for an empty script.
func (s ScriptStats) Fraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Mastered) / float64(s.Total)
}

// Practice pairs a character with its entry.
type Practice struct {
	Character catalog.Character
	Entry     Entry
}

// Stats aggregates progress over a set of characters.
type Stats struct {
	Total    int
	Mastered int
	Attempts int
	Correct  int
	// Accuracy is a percentage in [0, 100].
	Accuracy float64

	// NeedsPractice lists attempted characters answered wrong more often
	// than right, capped at NeedsPracticeLimit. NeedsPracticeMore counts
	// the ones left out.
	NeedsPractice     []Practice
	NeedsPracticeMore int

	ByScript []ScriptStats
}

// Stats computes dashboard aggregates over chars.
func (t *Tracker) Stats(chars []catalog.Character) Stats {
	st := Stats{Total: len(chars)}
	byScript := make(map[catalog.Script]*ScriptStats, len(catalog.Scripts))
	for _, s := range catalog.Scripts {
		byScript[s] = &ScriptStats{Script: s}
	}

	var weak []Practice
	for _, ch := range chars {
		e := t.Query(ch.ID)
		st.Attempts += e.Attempts()
		st.Correct += e.CorrectCount
		if e.Mastered {
			st.Mastered++
		}
		if e.IncorrectCount > 0 && e.IncorrectCount > e.CorrectCount {
			weak = append(weak, Practice{Character: ch, Entry: e})
		}
		if ss, ok := byScript[ch.Script]; ok {
			ss.Total++
			if e.Mastered {
				ss.Mastered++
			}
		}
	}

	if st.Attempts > 0 {
		st.Accuracy = float64(st.Correct) / float64(st.Attempts) * 100
	}

	if len(weak) > NeedsPracticeLimit {
		st.NeedsPracticeMore = len(weak) - NeedsPracticeLimit
		weak = weak[:NeedsPracticeLimit]
	}
	st.NeedsPractice = weak

	for _, s := range catalog.Scripts {
		st.ByScript = append(st.ByScript, *byScript[s])
	}
	return st
}
