package game

// Pointer is the hover/click state fed by the view (or a test).
type Pointer struct {
	Cell    Cell
	Valid   bool // pointer is over the map
	Clicked bool // primary button pressed this frame
}

// PointAt moves the pointer over c. Cells outside the map clear it.
func (s *Session) PointAt(c Cell) {
	s.pointer.Cell = c
	s.pointer.Valid = s.level.Walk.InBounds(c.X, c.Y)
}

// ClearPointer marks the pointer as off the map.
func (s *Session) ClearPointer() {
	s.pointer.Valid = false
}

// Click registers a primary click at the current pointer cell. It is consumed
// at the end of the next Update.
func (s *Session) Click() {
	if s.pointer.Valid {
		s.pointer.Clicked = true
	}
}

// Pointer returns the current pointer state.
func (s *Session) Pointer() Pointer {
	return s.pointer
}

// Preview returns the path from the active human player to the pointer,
// already capped to the steps remaining. Nil outside a human turn.
func (s *Session) Preview() []Cell {
	return s.preview
}

// EndTurn asks to end the current turn. Only the human player may end its
// own turn early; it reports whether the request was accepted.
func (s *Session) EndTurn() bool {
	p := s.ActivePlayer()
	if p == nil || p.NPC {
		return false
	}
	s.endTurn = true
	s.events.Add(s.frame, s.Turn(), p.Name, "input", "end_turn", "", float64(p.StepsRemaining))
	return true
}
