package game

import "fmt"

// buildingBehavior is a 2x2 structure captured by the last player to step
// onto it.
type buildingBehavior struct {
	selected bool
}

// Update highlights the building while a human player hovers it.
func (b *buildingBehavior) Update(s *Session, e *Entity) {
	b.selected = false
	p := s.ActivePlayer()
	if p == nil || p.NPC || !s.pointer.Valid {
		return
	}
	b.selected = e.Covers(s.pointer.Cell)
}

func (b *buildingBehavior) Draw(r Renderer, s *Session, e *Entity) {
	x, y := float64(e.Cell.X), float64(e.Cell.Y)
	r.DrawTile(x, y, e.Tile, TileOptions{Span: e.Span})
	if b.selected {
		r.DrawTile(x, y, s.cfg.Buildings.SelectTile, TileOptions{Span: e.Span})
	}
	if e.Owner == nil {
		return
	}
	flags := s.cfg.Tiles.Flags
	if i := s.PlayerIndex(e.Owner); i >= 0 && len(flags) > 0 {
		r.DrawTile(x+1, y+1, flags[i%len(flags)], TileOptions{})
	}
}

// Interact transfers ownership to the player that settled on the building.
func (b *buildingBehavior) Interact(s *Session, e, other *Entity) {
	if other.Kind != KindPlayer || e.Owner == other {
		return
	}
	prev := "nobody"
	if e.Owner != nil {
		prev = e.Owner.Name
	}
	e.Owner = other
	s.stats.Captures++
	s.log.Info("building captured", "building", e.Name, "player", other.Name, "from", prev)
	s.events.Add(s.frame, s.Turn(), other.Name, "building", "captured",
		fmt.Sprintf("%s from %s", e.Name, prev), 1)
}

// Selected reports whether the pointer is over the building this frame.
func (b *buildingBehavior) Selected() bool {
	return b.selected
}

// Owned returns the buildings p holds.
func (s *Session) Owned(p *Entity) []*Entity {
	var out []*Entity
	for _, b := range s.buildings {
		if b.Owner == p {
			out = append(out, b)
		}
	}
	return out
}
