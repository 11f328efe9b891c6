package study

// advanceMsg moves past a scored card once the verdict has been rendered.
type advanceMsg struct {
	// card is the deck position that was scored.
	card int
}
