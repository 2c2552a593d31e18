package source

// Static serves in-memory text. The whole text is returned by the first
// Poll regardless of the budget.
type Static struct {
	text   []byte
	polled bool
}

// NewStatic creates a Static source for text.
func NewStatic(text string) *Static {
	return &Static{text: []byte(text)}
}

// Poll implements Source.
func (s *Static) Poll(int) ([]byte, bool) {
	if s.polled {
		return nil, false
	}
	s.polled = true
	return s.text, false
}

// State implements Source. Static text is always complete.
func (s *Static) State() State { return Finished }

// ExitStatus implements Source.
func (s *Static) ExitStatus() (int, bool) { return 0, false }

// Close implements Source.
func (s *Static) Close() error { return nil }
