package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNoSession    = errors.New("entity needs an owning session")
	ErrNoBehavior   = errors.New("entity needs a behavior")
	ErrPathRejected = errors.New("path rejected")
)

// Kind identifies what an entity is.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindBuilding
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBuilding:
		return "building"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// MoveState is the per-entity movement state.
type MoveState uint8

const (
	StateIdle      MoveState = iota // waiting for a path or its turn
	StateAnimating                  // interpolating one grid step
	StateDeciding                   // NPC choosing its next path
	StateTurnDone                   // nothing left to do this turn
)

func (s MoveState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	case StateDeciding:
		return "deciding"
	case StateTurnDone:
		return "turn_done"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// TileOptions modifies how a sprite is drawn.
type TileOptions struct {
	FlipX  bool
	Alpha  float64 // 0 means opaque
	Span   int     // footprint in cells; 0 means 1
	Shadow bool
}

// Renderer is the drawing surface the view hands to entity behaviours.
// Coordinates are in grid cells.
type Renderer interface {
	DrawTile(x, y float64, tile int, opts TileOptions)
}

// Behavior holds the per-kind logic of an entity.
type Behavior interface {
	Update(s *Session, e *Entity)
	Draw(r Renderer, s *Session, e *Entity)
	Interact(s *Session, e, other *Entity)
}

// Entity is anything placed on the grid.
type Entity struct {
	ID    string
	Name  string
	Kind  Kind
	NPC   bool
	Tile  int
	FlipX bool

	Cell Cell // last settled cell
	Pos  Vec2 // interpolated position

	Budget         int
	StepsRemaining int
	Path           []Cell
	PathIndex      int
	Tween          *Tween
	State          MoveState

	Owner *Entity // not owned; e.g. the player holding a building
	Span  int     // footprint size in cells

	behavior Behavior
	session  *Session
}

// EntityConfig holds the construction parameters for an Entity.
type EntityConfig struct {
	Session  *Session // required
	Behavior Behavior // required
	Name     string
	Kind     Kind
	NPC      bool
	Tile     int
	Cell     Cell
	Budget   int
	Span     int
}

// NewEntity validates cfg and builds an entity at cfg.Cell.
func NewEntity(cfg EntityConfig) (*Entity, error) {
	if cfg.Session == nil {
		return nil, ErrNoSession
	}
	if cfg.Behavior == nil {
		return nil, ErrNoBehavior
	}
	if cfg.Budget < 0 {
		return nil, fmt.Errorf("entity %q: negative budget %d", cfg.Name, cfg.Budget)
	}
	span := cfg.Span
	if span <= 0 {
		span = 1
	}
	return &Entity{
		ID:       uuid.NewString(),
		Name:     cfg.Name,
		Kind:     cfg.Kind,
		NPC:      cfg.NPC,
		Tile:     cfg.Tile,
		Cell:     cfg.Cell,
		Pos:      cfg.Cell.Vec(),
		Budget:   cfg.Budget,
		Span:     span,
		behavior: cfg.Behavior,
		session:  cfg.Session,
	}, nil
}

// Session returns the owning session.
func (e *Entity) Session() *Session {
	return e.session
}

// Behavior returns the entity's per-kind logic.
func (e *Entity) Behavior() Behavior {
	return e.behavior
}

// Settled reports whether the entity is not mid-step.
func (e *Entity) Settled() bool {
	return e.Tween == nil || e.Tween.Finished()
}

// Covers reports whether c lies inside the entity's footprint.
func (e *Entity) Covers(c Cell) bool {
	return c.X >= e.Cell.X && c.X < e.Cell.X+e.Span &&
		c.Y >= e.Cell.Y && c.Y < e.Cell.Y+e.Span
}

// Remaining returns the waypoints not yet started.
func (e *Entity) Remaining() []Cell {
	if e.PathIndex >= len(e.Path) {
		return nil
	}
	return e.Path[e.PathIndex:]
}

// SetPath assigns a pending path. It is only honoured while the entity is
// the active player and not mid-step, and when every waypoint is open and
// adjacent to the previous one. An empty path clears the pending one.
func (e *Entity) SetPath(path []Cell) error {
	s := e.session
	if s.ActivePlayer() != e {
		return fmt.Errorf("%w: %s is not the active player", ErrPathRejected, e.Name)
	}
	if !e.Settled() {
		return fmt.Errorf("%w: %s is mid-step", ErrPathRejected, e.Name)
	}
	if len(path) == 0 {
		e.Path, e.PathIndex = nil, 0
		return nil
	}
	if e.StepsRemaining <= 0 {
		return fmt.Errorf("%w: %s has no steps left", ErrPathRejected, e.Name)
	}
	if !ValidPath(s.level.Walk, e.Cell, path) {
		return fmt.Errorf("%w: %s path is not walkable", ErrPathRejected, e.Name)
	}
	if len(path) > e.StepsRemaining {
		path = path[:e.StepsRemaining]
	}
	e.Path = path
	e.PathIndex = 0
	if e.State == StateDeciding || e.State == StateTurnDone {
		e.State = StateIdle
	}
	return nil
}

// Entities is the ordered set of everything on the map.
type Entities struct {
	list []*Entity
}

// Add appends e and returns it.
func (es *Entities) Add(e *Entity) *Entity {
	es.list = append(es.list, e)
	return e
}

// List returns the entities in insertion order.
func (es *Entities) List() []*Entity {
	return es.list
}

// Len returns the number of entities.
func (es *Entities) Len() int {
	return len(es.list)
}

// At returns the first entity whose footprint covers c and that is not
// except, or nil.
func (es *Entities) At(c Cell, except *Entity) *Entity {
	for _, e := range es.list {
		if e != except && e.Covers(c) {
			return e
		}
	}
	return nil
}

// Covering returns every entity other than except whose footprint covers c,
// in insertion order.
func (es *Entities) Covering(c Cell, except *Entity) []*Entity {
	var out []*Entity
	for _, e := range es.list {
		if e != except && e.Covers(c) {
			out = append(out, e)
		}
	}
	return out
}

// Update runs every entity's behaviour.
func (es *Entities) Update(s *Session) {
	for _, e := range es.list {
		e.behavior.Update(s, e)
	}
}

// Draw renders every entity.
func (es *Entities) Draw(r Renderer, s *Session) {
	for _, e := range es.list {
		e.behavior.Draw(r, s, e)
	}
}
