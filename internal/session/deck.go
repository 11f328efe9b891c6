// Package session manages the deck of cards for one study session.
package session

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kanaflash/internal/catalog"
)

// State is the lifecycle state of a Deck.
type State int

const (
	StateIdle   State = iota // No session
	StateActive              // Deck built, cursor valid
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Deck is the working set of cards for one study session.
//
// Answered flags are keyed by character ID, so reshuffling keeps each
// card's flag attached to the card rather than to a position.
type Deck struct {
	state State

	// cards is the ordered working set, possibly shuffled.
	cards []catalog.Character

	// cursor indexes cards; valid only when cards is non-empty.
	cursor int

	mode Mode

	// flipped is true once the current card's answer face is revealed.
	flipped bool

	// answered holds the IDs of cards already scored this session.
	answered map[string]bool

	// correct counts answers recorded as correct this session.
	correct int

	id        string
	startedAt time.Time

	rng *rand.Rand
	now func() time.Time
}

// DeckOption configures a Deck.
type DeckOption func(*Deck)

// WithRand sets the random source used for shuffling.
func WithRand(r *rand.Rand) DeckOption {
	return func(d *Deck) { d.rng = r }
}

// WithDeckClock overrides the time source for session timestamps.
func WithDeckClock(now func() time.Time) DeckOption {
	return func(d *Deck) { d.now = now }
}

// NewDeck returns an idle deck.
func NewDeck(opts ...DeckOption) *Deck {
	d := &Deck{
		answered: make(map[string]bool),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start builds the deck from chars and makes it active. When shuffle is
// true the order is a uniform random permutation. An empty chars yields an
// active deck with no cards; callers reject empty selections first.
func (d *Deck) Start(chars []catalog.Character, mode Mode, shuffle bool) {
	d.cards = slices.Clone(chars)
	if shuffle {
		d.shuffle()
	}
	d.cursor = 0
	d.mode = mode
	d.flipped = false
	d.answered = make(map[string]bool)
	d.correct = 0
	d.id = uuid.NewString()
	d.startedAt = d.now()
	d.state = StateActive
}

func (d *Deck) shuffle() {
	swap := func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(d.cards), swap)
		return
	}
	rand.Shuffle(len(d.cards), swap)
}

// Advance moves to the next card. It is a no-op on the last card.
func (d *Deck) Advance() bool {
	if !d.HasNext() {
		return false
	}
	d.cursor++
	d.flipped = false
	return true
}

// Retreat moves to the previous card. It is a no-op on the first card.
func (d *Deck) Retreat() bool {
	if !d.HasPrevious() {
		return false
	}
	d.cursor--
	d.flipped = false
	return true
}

// Reshuffle re-randomizes the order and returns to the first card.
func (d *Deck) Reshuffle() {
	if d.state != StateActive {
		return
	}
	d.shuffle()
	d.cursor = 0
	d.flipped = false
}

// Flip reveals the answer face of the current card. It cannot be undone
// until the cursor moves.
func (d *Deck) Flip() {
	if len(d.cards) > 0 {
		d.flipped = true
	}
}

// Flipped reports whether the current card shows its answer face.
func (d *Deck) Flipped() bool {
	return d.flipped
}

// MarkCurrentAnswered records that the current card has been scored.
// The deck does not stop callers from scoring a card twice; check
// CurrentAnswered first.
func (d *Deck) MarkCurrentAnswered() {
	if c, ok := d.Current(); ok {
		d.answered[c.ID] = true
	}
}

// CurrentAnswered reports whether the current card has been scored.
func (d *Deck) CurrentAnswered() bool {
	c, ok := d.Current()
	return ok && d.answered[c.ID]
}

// RecordResult tallies a scored answer for the session summary.
func (d *Deck) RecordResult(correct bool) {
	if correct {
		d.correct++
	}
}

// End discards the deck, returns to idle and reports what happened.
func (d *Deck) End() Summary {
	sum := Summary{
		SessionID: d.id,
		Mode:      d.mode,
		StartedAt: d.startedAt,
		EndedAt:   d.now(),
		DeckSize:  len(d.cards),
		Answered:  d.AnsweredCount(),
		Correct:   d.correct,
	}

	d.cards = nil
	d.cursor = 0
	d.mode = ""
	d.flipped = false
	d.answered = make(map[string]bool)
	d.correct = 0
	d.id = ""
	d.startedAt = time.Time{}
	d.state = StateIdle
	return sum
}

// HasNext reports whether a card follows the current one.
func (d *Deck) HasNext() bool {
	return d.cursor < len(d.cards)-1
}

// HasPrevious reports whether a card precedes the current one.
func (d *Deck) HasPrevious() bool {
	return d.cursor > 0
}

// Current returns the card under the cursor.
func (d *Deck) Current() (catalog.Character, bool) {
	if len(d.cards) == 0 {
		return catalog.Character{}, false
	}
	return d.cards[d.cursor], true
}

// Cards returns a copy of the deck in its current order.
func (d *Deck) Cards() []catalog.Character {
	return slices.Clone(d.cards)
}

// Position returns the zero-based cursor.
func (d *Deck) Position() int { return d.cursor }

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// Mode returns the presentation mode of the active session.
func (d *Deck) Mode() Mode { return d.mode }

// State returns the lifecycle state.
func (d *Deck) State() State { return d.state }

// Active reports whether a session is in progress.
func (d *Deck) Active() bool { return d.state == StateActive }

// ID returns the session ID, or "" when idle.
func (d *Deck) ID() string { return d.id }

// AnsweredCount returns how many cards in the deck have been scored.
func (d *Deck) AnsweredCount() int {
	n := 0
	for _, c := range d.cards {
		if d.answered[c.ID] {
			n++
		}
	}
	return n
}

// Correct returns the number of correct answers so far.
func (d *Deck) Correct() int { return d.correct }
