// Package study holds the view controller that turns user actions into
// selection, mode, theme, deck and progress state transitions.
package study

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/progress"
	"github.com/abhisek/kanaflash/internal/session"
	"github.com/abhisek/kanaflash/internal/store"
	"github.com/abhisek/kanaflash/internal/ui/theme"
)

// ErrEmptySelection is returned when a study session is started with no
// characters selected.
var ErrEmptySelection = errors.New("select at least one character to study")

// Options configures a Controller.
type Options struct {
	Catalog  *catalog.Catalog
	Tracker  *progress.Tracker
	Deck     *session.Deck
	Channels Channels

	// History is optional. When set, finished sessions are appended and
	// the table is pruned to HistoryLimit rows.
	History      store.SessionRepo
	HistoryLimit int

	Logger      *slog.Logger
	Shuffle     bool
	DefaultMode session.Mode
}

// Controller is the single owner of the app's mutable state. It is not
// safe for concurrent use; Bubble Tea drives it from one goroutine.
type Controller struct {
	catalog  *catalog.Catalog
	tracker  *progress.Tracker
	deck     *session.Deck
	channels Channels
	history  store.SessionRepo
	keep     int
	log      *slog.Logger
	shuffle  bool

	defaultMode session.Mode
	selected    map[string]bool
	mode        session.Mode
	darkMode    bool
	last        *session.Summary
}

// New creates a Controller. The deck and logger are created when absent.
func New(opts Options) *Controller {
	c := &Controller{
		catalog:     opts.Catalog,
		tracker:     opts.Tracker,
		deck:        opts.Deck,
		channels:    opts.Channels,
		history:     opts.History,
		keep:        opts.HistoryLimit,
		log:         opts.Logger,
		shuffle:     opts.Shuffle,
		defaultMode: opts.DefaultMode,
		selected:    make(map[string]bool),
	}
	if c.deck == nil {
		c.deck = session.NewDeck()
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !c.defaultMode.Valid() {
		c.defaultMode = session.DefaultMode
	}
	c.mode = c.defaultMode
	return c
}

// Catalog returns the character catalog.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Tracker returns the progress tracker.
func (c *Controller) Tracker() *progress.Tracker { return c.tracker }

// Deck returns the study deck.
func (c *Controller) Deck() *session.Deck { return c.deck }

// History returns the session history repo, which may be nil.
func (c *Controller) History() store.SessionRepo { return c.history }

// Restore loads saved view state: the selection snapshot first, then the
// mode snapshot, which wins over the selection's mode, then the theme.
func (c *Controller) Restore(ctx context.Context) {
	if sel, ok := c.channels.Selection.Load(ctx); ok {
		c.setSelection(c.catalog.Resolve(sel.SelectedCharacterIDs))
		if sel.Mode.Valid() {
			c.mode = sel.Mode
		}
	}
	if m, ok := c.channels.Mode.Load(ctx); ok && m.Mode.Valid() {
		c.mode = m.Mode
	}
	if t, ok := c.channels.Theme.Load(ctx); ok {
		c.darkMode = t.DarkMode
	}
	theme.Apply(c.darkMode)

	c.log.Debug("restored view state",
		"selected", len(c.selected), "mode", string(c.mode), "dark", c.darkMode)
}

// Selection

// Toggle flips the selection of one character. Unknown IDs are ignored.
func (c *Controller) Toggle(id string) {
	if _, ok := c.catalog.ByID(id); !ok {
		return
	}
	if c.selected[id] {
		delete(c.selected, id)
	} else {
		c.selected[id] = true
	}
}

// SelectAll replaces the selection with chars.
func (c *Controller) SelectAll(chars []catalog.Character) {
	c.setSelection(chars)
}

// DeselectAll removes chars from the selection.
func (c *Controller) DeselectAll(chars []catalog.Character) {
	for _, ch := range chars {
		delete(c.selected, ch.ID)
	}
}

// SetSelection replaces the selection with chars.
func (c *Controller) SetSelection(chars []catalog.Character) {
	c.setSelection(chars)
}

func (c *Controller) setSelection(chars []catalog.Character) {
	c.selected = make(map[string]bool, len(chars))
	for _, ch := range chars {
		c.selected[ch.ID] = true
	}
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id string) bool { return c.selected[id] }

// SelectedCount returns the number of selected characters.
func (c *Controller) SelectedCount() int { return len(c.selected) }

// Selected returns the selected characters in catalog order.
func (c *Controller) Selected() []catalog.Character {
	out := make([]catalog.Character, 0, len(c.selected))
	for _, ch := range c.catalog.All() {
		if c.selected[ch.ID] {
			out = append(out, ch)
		}
	}
	return out
}

// PersistSelection saves the selection snapshot. An empty selection is
// not saved and leaves any earlier snapshot in place.
func (c *Controller) PersistSelection(ctx context.Context) {
	sel := c.Selected()
	if len(sel) == 0 {
		return
	}
	ids := make([]string, len(sel))
	for i, ch := range sel {
		ids[i] = ch.ID
	}
	c.channels.Selection.Save(ctx, SelectionPayload{SelectedCharacterIDs: ids, Mode: c.mode})
}

// Mode

// Mode returns the current study mode.
func (c *Controller) Mode() session.Mode { return c.mode }

// SetMode changes and saves the study mode, and re-saves the selection
// snapshot so its mode stays current. Invalid modes are ignored.
func (c *Controller) SetMode(ctx context.Context, m session.Mode) {
	if !m.Valid() {
		return
	}
	c.mode = m
	c.channels.Mode.Save(ctx, ModePayload{Mode: m})
	c.PersistSelection(ctx)
}

// ToggleMode switches between the two study modes.
func (c *Controller) ToggleMode(ctx context.Context) {
	c.SetMode(ctx, c.mode.Toggle())
}

// SetShuffle controls whether sessions started after this call shuffle.
func (c *Controller) SetShuffle(on bool) { c.shuffle = on }

// Theme

// DarkMode reports whether the dark theme is on.
func (c *Controller) DarkMode() bool { return c.darkMode }

// ToggleTheme switches the palette and saves the choice.
func (c *Controller) ToggleTheme(ctx context.Context) {
	c.darkMode = !c.darkMode
	theme.Apply(c.darkMode)
	c.channels.Theme.Save(ctx, ThemePayload{DarkMode: c.darkMode})
}

// Study

// StartStudy builds a deck from the selection in the current mode.
func (c *Controller) StartStudy() error {
	sel := c.Selected()
	if len(sel) == 0 {
		return ErrEmptySelection
	}
	c.last = nil
	c.deck.Start(sel, c.mode, c.shuffle)
	c.log.Info("study session started",
		"session", c.deck.ID(), "cards", c.deck.Len(), "mode", string(c.mode))
	return nil
}

// Reveal flips the current card.
func (c *Controller) Reveal() {
	if c.deck.Active() {
		c.deck.Flip()
	}
}

// Answer scores the current card. It accepts one answer per card, and
// only after the card has been revealed.
func (c *Controller) Answer(ctx context.Context, correct bool) bool {
	if !c.deck.Active() || !c.deck.Flipped() || c.deck.CurrentAnswered() {
		return false
	}
	card, ok := c.deck.Current()
	if !ok {
		return false
	}
	c.tracker.RecordAnswer(ctx, card.ID, correct)
	c.deck.MarkCurrentAnswered()
	c.deck.RecordResult(correct)
	return true
}

// Continue moves to the next card after an answer. When there is no next
// card the session is finished and Continue returns false.
func (c *Controller) Continue(ctx context.Context) bool {
	if !c.deck.Active() {
		return false
	}
	if c.deck.Advance() {
		return true
	}
	c.Finish(ctx)
	return false
}

// Finish ends the active session, records it in the history and keeps
// its summary for LastSummary.
func (c *Controller) Finish(ctx context.Context) session.Summary {
	if !c.deck.Active() {
		if c.last != nil {
			return *c.last
		}
		return session.Summary{}
	}
	sum := c.deck.End()
	c.last = &sum
	c.log.Info("study session ended",
		"session", sum.SessionID, "answered", sum.Answered, "correct", sum.Correct, "completed", sum.Completed())
	c.recordHistory(ctx, sum)
	return sum
}

// EndStudy abandons the active session. It is safe to call repeatedly.
func (c *Controller) EndStudy(ctx context.Context) {
	if c.deck.Active() {
		c.Finish(ctx)
	}
}

// LastSummary returns the summary of the most recently finished session.
func (c *Controller) LastSummary() (session.Summary, bool) {
	if c.last == nil {
		return session.Summary{}, false
	}
	return *c.last, true
}

func (c *Controller) recordHistory(ctx context.Context, sum session.Summary) {
	if c.history == nil || sum.Answered == 0 {
		return
	}
	rec := store.SessionRecord{
		ID:        sum.SessionID,
		Mode:      string(sum.Mode),
		StartedAt: sum.StartedAt,
		EndedAt:   sum.EndedAt,
		DeckSize:  sum.DeckSize,
		Answered:  sum.Answered,
		Correct:   sum.Correct,
		Completed: sum.Completed(),
	}
	if err := c.history.Append(ctx, rec); err != nil {
		c.log.Warn("append session history", "session", rec.ID, "err", err)
		return
	}
	if c.keep > 0 {
		if err := c.history.Prune(ctx, c.keep); err != nil {
			c.log.Warn("prune session history", "err", err)
		}
	}
}

// Maintenance

// ResetProgress wipes all progress and clears every snapshot.
func (c *Controller) ResetProgress(ctx context.Context) {
	c.tracker.Reset(ctx)
	c.channels.Selection.Clear(ctx)
	c.channels.Mode.Clear(ctx)
	c.channels.Theme.Clear(ctx)
	c.log.Info("progress reset")
}

// ClearSession clears the saved and in-memory selection.
func (c *Controller) ClearSession(ctx context.Context) {
	c.channels.Selection.Clear(ctx)
	c.selected = make(map[string]bool)
}

// ClearMode clears the saved mode and restores the default. The selection
// snapshot is re-saved with the default mode.
func (c *Controller) ClearMode(ctx context.Context) {
	c.channels.Mode.Clear(ctx)
	c.mode = c.defaultMode
	c.PersistSelection(ctx)
}

// ClearTheme clears the saved theme and restores the light palette.
func (c *Controller) ClearTheme(ctx context.Context) {
	c.channels.Theme.Clear(ctx)
	c.darkMode = false
	theme.Apply(false)
}
