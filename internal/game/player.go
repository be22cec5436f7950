package game

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// playerBehavior drives both the human player and computer players. Only
// the active player acts; the others just finish any step in flight.
type playerBehavior struct{}

func (b *playerBehavior) Update(s *Session, e *Entity) {
	if s.ActivePlayer() != e || e.State == StateTurnDone {
		return
	}
	if !e.Settled() {
		return
	}

	if len(e.Remaining()) > 0 && e.StepsRemaining > 0 {
		s.step(e)
		return
	}
	if e.StepsRemaining <= 0 {
		s.preview = nil
		s.finishTurn(e, "budget spent")
		return
	}

	if e.NPC {
		if b.decide(s, e) {
			s.step(e)
		}
		return
	}
	b.followPointer(s, e)
}

// followPointer keeps the preview path up to date and commits it on click.
func (b *playerBehavior) followPointer(s *Session, e *Entity) {
	if !s.pointer.Valid {
		s.preview = nil
		return
	}
	s.preview = Truncate(FindPath(s.level.Walk, e.Cell, s.pointer.Cell), e.StepsRemaining)
	if !s.pointer.Clicked || len(s.preview) == 0 {
		return
	}
	if err := e.SetPath(s.preview); err != nil {
		s.stats.Rejected++
		s.log.Debug("click ignored", "player", e.Name, "err", err)
		return
	}
	s.events.Add(s.frame, s.Turn(), e.Name, "input", "path",
		fmt.Sprintf("to (%d,%d)", s.pointer.Cell.X, s.pointer.Cell.Y), float64(len(e.Path)))
	s.preview = nil
	s.step(e)
}

// decide picks a path for a computer player: first towards the nearest
// entity if it is reachable within budget, then towards random open cells.
// With nothing reachable the turn is skipped.
func (b *playerBehavior) decide(s *Session, e *Entity) bool {
	e.State = StateDeciding
	walk := s.level.Walk

	if target := nearestTarget(s, e); target != nil {
		path := FindPath(walk, e.Cell, target.Cell)
		if len(path) > 1 && len(path)-1 <= e.StepsRemaining {
			if b.adopt(s, e, path) {
				s.stats.EntityTargets++
				s.events.Add(s.frame, s.Turn(), e.Name, "ai", "target",
					target.Name, float64(len(path)-1))
				return true
			}
		}
	}

	open := s.level.OpenCells()
	tried := mapset.New[Cell]()
	for attempt := 0; attempt < s.cfg.AI.MaxAttempts && len(open) > 0; attempt++ {
		c := open[s.rng.Intn(len(open))]
		if tried.Has(c) {
			continue
		}
		tried.Put(c)
		path := FindPath(walk, e.Cell, c)
		if len(path) < 2 {
			continue
		}
		if b.adopt(s, e, path) {
			s.stats.RandomTargets++
			s.events.AddVerbose(s.frame, s.Turn(), e.Name, "ai", "wander",
				fmt.Sprintf("(%d,%d)", c.X, c.Y), float64(len(path)-1))
			return true
		}
	}

	s.stats.StuckTurns++
	s.log.Warn("npc stuck", "player", e.Name, "turn", s.Turn(), "tried", tried.Size())
	s.events.Add(s.frame, s.Turn(), e.Name, "ai", "stuck",
		fmt.Sprintf("no path after %d attempts", s.cfg.AI.MaxAttempts), float64(tried.Size()))
	s.finishTurn(e, "stuck")
	return false
}

func (b *playerBehavior) adopt(s *Session, e *Entity, path []Cell) bool {
	if err := e.SetPath(Truncate(path, e.StepsRemaining)); err != nil {
		s.stats.Rejected++
		s.log.Debug("npc path rejected", "player", e.Name, "err", err)
		return false
	}
	return true
}

// nearestTarget returns the closest entity that e does not own and is not
// standing on.
func nearestTarget(s *Session, e *Entity) *Entity {
	var best *Entity
	bestD := 0
	for _, o := range s.entities.List() {
		if o == e || o.Owner == e || o.Covers(e.Cell) {
			continue
		}
		d := e.Cell.DistSq(o.Cell)
		if best == nil || d < bestD {
			best, bestD = o, d
		}
	}
	return best
}

func (b *playerBehavior) Draw(r Renderer, s *Session, e *Entity) {
	r.DrawTile(e.Pos.X, e.Pos.Y, e.Tile, TileOptions{FlipX: e.FlipX, Shadow: true})
	if s.ActivePlayer() != e || e.NPC {
		return
	}
	for _, c := range s.preview {
		r.DrawTile(float64(c.X), float64(c.Y), e.Tile, TileOptions{Alpha: 0.4})
	}
}

// Players walking onto each other do nothing.
func (b *playerBehavior) Interact(*Session, *Entity, *Entity) {}
