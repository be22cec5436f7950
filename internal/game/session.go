package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
)

// ErrNoSpawn is returned when the map has no room for a player or building.
var ErrNoSpawn = errors.New("no open cell to spawn on")

// Stats counts what happened during a session.
type Stats struct {
	Frames        int
	Turns         int // completed turns
	Steps         int // grid steps started
	StuckTurns    int // NPC turns skipped for lack of a path
	EntityTargets int // NPC paths aimed at another entity
	RandomTargets int // NPC paths aimed at a random cell
	Captures      int
	Rejected      int // paths refused by SetPath
}

// Session owns all state of one game: map, fog, entities and turn order.
type Session struct {
	cfg    Config
	rng    *rand.Rand
	log    *slog.Logger
	events *SimLog
	easing Easing

	level     *Level
	fog       *FogField
	entities  Entities
	players   []*Entity
	buildings []*Entity
	scheduler *TurnScheduler

	pointer Pointer
	preview []Cell
	advance bool // active player is done; scheduler moves on after this frame
	endTurn bool // explicit end-turn request

	frame   int
	elapsed float64
	stats   Stats
}

// layout pins spawn points instead of sampling them. Used by the test harness.
type layout struct {
	spawns    []Cell
	buildings []Cell
}

// NewSession validates cfg, generates a level and starts the first turn.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- game only, must be reproducible
	lv, err := BuildLevel(cfg, rng)
	if err != nil {
		return nil, err
	}
	return newSession(cfg, lv, rng, nil, nil)
}

// BuildLevel runs every generation pass described by cfg: automata, border,
// 2x2 blocks, pattern layers, roads and ground scatter.
func BuildLevel(cfg Config, rng *rand.Rand) (*Level, error) {
	sets, err := cfg.PatternSets()
	if err != nil {
		return nil, err
	}
	lv := GenerateLevel(cfg.Map, rng)
	for _, set := range sets {
		ReplaceTiles(lv, set, rng)
	}
	lv.CarveRoads(rng, cfg.Map.RoadAttempts, cfg.Map.MaxRoads, cfg.Tiles.Roads)
	lv.ScatterGround(rng, cfg.Map.GroundChance, cfg.Tiles.Ground)
	return lv, nil
}

func newSession(cfg Config, lv *Level, rng *rand.Rand, fixed *layout, events *SimLog) (*Session, error) {
	easing, ok := EasingByName(cfg.Motion.Easing)
	if !ok {
		easing = Linear
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if events == nil {
		events = NewSimLog(false)
	}
	s := &Session{
		cfg:    cfg,
		rng:    rng,
		log:    log,
		events: events,
		easing: easing,
		level:  lv,
		fog:    NewFogField(lv.Walk.Cols, lv.Walk.Rows),
	}
	if err := s.spawnPlayers(fixed); err != nil {
		return nil, err
	}
	if err := s.spawnBuildings(fixed); err != nil {
		return nil, err
	}
	s.scheduler = NewTurnScheduler(s.players)
	s.scheduler.OnTurnStart = s.onTurnStart
	s.scheduler.Start()
	return s, nil
}

func (s *Session) spawnPlayers(fixed *layout) error {
	for i, pc := range s.cfg.Players {
		var c Cell
		if fixed != nil && i < len(fixed.spawns) {
			c = fixed.spawns[i]
		} else {
			var err error
			if c, err = s.pickSpawn(pc.Quadrant, i); err != nil {
				return fmt.Errorf("spawn %s: %w", pc.Name, err)
			}
			if s.cfg.Map.ClearSpawn {
				s.level.Destroy(c)
			}
		}
		p, err := NewEntity(EntityConfig{
			Session:  s,
			Behavior: &playerBehavior{},
			Name:     pc.Name,
			Kind:     KindPlayer,
			NPC:      pc.NPC,
			Tile:     pc.Tile,
			Cell:     c,
			Budget:   pc.Budget,
		})
		if err != nil {
			return err
		}
		// The first leg starts and ends on the spawn cell; finishing it
		// settles the player and reveals the fog around it.
		p.Tween = s.newStepTween(p)
		s.players = append(s.players, p)
		s.entities.Add(p)
	}
	return nil
}

func (s *Session) pickSpawn(quadrant, index int) (Cell, error) {
	if quadrant == 0 {
		quadrant = index%4 + 1
	}
	tries := s.level.Size * s.level.Size
	for i := 0; i < tries; i++ {
		c, ok, err := s.level.RandomOpenCell(quadrant, s.rng, 1)
		if err != nil {
			return Cell{}, err
		}
		if ok && s.entities.At(c, nil) == nil {
			return c, nil
		}
	}
	open := s.level.OpenCells()
	s.rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	for _, c := range open {
		if s.entities.At(c, nil) == nil {
			return c, nil
		}
	}
	return Cell{}, ErrNoSpawn
}

func (s *Session) spawnBuildings(fixed *layout) error {
	var cells []Cell
	if fixed != nil {
		cells = fixed.buildings
	} else {
		for i := 0; i < s.cfg.Buildings.Count; i++ {
			c, ok := s.pickBuildingSite()
			if !ok {
				s.log.Warn("no room for building", "placed", i, "wanted", s.cfg.Buildings.Count)
				break
			}
			cells = append(cells, c)
		}
	}
	for i, c := range cells {
		b, err := NewEntity(EntityConfig{
			Session:  s,
			Behavior: &buildingBehavior{},
			Name:     fmt.Sprintf("Building %d", i+1),
			Kind:     KindBuilding,
			Tile:     s.cfg.Buildings.Tile,
			Cell:     c,
			Span:     2,
		})
		if err != nil {
			return err
		}
		s.buildings = append(s.buildings, b)
		s.entities.Add(b)
	}
	return nil
}

func (s *Session) pickBuildingSite() (Cell, bool) {
	for tries := 0; tries < 16; tries++ {
		c, ok := s.level.RandomOpen2x2(s.rng)
		if !ok {
			return Cell{}, false
		}
		free := true
		for _, d := range []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			if s.entities.At(c.Add(d), nil) != nil {
				free = false
				break
			}
		}
		if free {
			return c, true
		}
	}
	return Cell{}, false
}

func (s *Session) newStepTween(e *Entity) *Tween {
	return NewTween(TweenConfig{
		Start:      e.Cell.Vec(),
		End:        e.Cell.Vec(),
		Duration:   s.cfg.Motion.StepDuration,
		Easing:     s.easing,
		OnTick:     func(v Vec2) { e.Pos = v },
		OnComplete: func() { s.settle(e) },
	})
}

func (s *Session) onTurnStart(turn int, p *Entity) {
	s.preview = nil
	s.log.Info("turn start", "turn", turn, "player", p.Name, "npc", p.NPC, "budget", p.Budget)
	s.events.Add(s.frame, turn, p.Name, "turn", "start",
		fmt.Sprintf("budget %d", p.Budget), float64(p.Budget))
}

// Update runs one frame: tweens advance, entities act, then the scheduler
// moves on if the active player is done.
func (s *Session) Update(dt float64) {
	s.frame++
	s.elapsed += dt
	s.stats.Frames++

	for _, e := range s.entities.List() {
		if e.Tween != nil {
			e.Tween.Update(dt)
		}
	}

	s.entities.Update(s)

	active := s.scheduler.Active()
	if active != nil && (s.advance || s.endTurn) {
		active.Path, active.PathIndex = nil, 0
		active.State = StateTurnDone
		s.advance, s.endTurn = false, false
		s.stats.Turns++
		s.scheduler.Next()
	}
	s.pointer.Clicked = false
}

// step starts the tween towards the next waypoint.
func (s *Session) step(e *Entity) {
	next := e.Path[e.PathIndex]
	if next.X != e.Cell.X {
		e.FlipX = next.X < e.Cell.X
	}
	e.Tween.Reset(e.Cell.Vec(), next.Vec(), s.cfg.Motion.StepDuration)
	e.PathIndex++
	e.StepsRemaining--
	e.State = StateAnimating
	s.stats.Steps++
	s.events.AddVerbose(s.frame, s.scheduler.Turn(), e.Name, "move", "step",
		fmt.Sprintf("(%d,%d)->(%d,%d)", e.Cell.X, e.Cell.Y, next.X, next.Y), float64(e.StepsRemaining))
}

// settle runs when a step tween completes: the entity snaps to its cell,
// fog clears around it and anything it landed on is triggered.
func (s *Session) settle(e *Entity) {
	end := e.Tween.End()
	e.Cell = Cell{X: int(math.Round(end.X)), Y: int(math.Round(end.Y))}
	e.Pos = e.Cell.Vec()
	s.fog.ClearCircle(e.Cell.X, e.Cell.Y, s.cfg.Fog.Radius)
	if e.PathIndex >= len(e.Path) {
		e.Path, e.PathIndex = nil, 0
	}
	if e.State == StateAnimating {
		e.State = StateIdle
	}
	for _, other := range s.entities.Covering(e.Cell, e) {
		other.behavior.Interact(s, other, e)
	}
}

// finishTurn marks the active player done; the scheduler advances at the end
// of the frame.
func (s *Session) finishTurn(e *Entity, reason string) {
	e.State = StateTurnDone
	s.advance = true
	s.events.Add(s.frame, s.scheduler.Turn(), e.Name, "turn", "done", reason, float64(e.StepsRemaining))
}

// Draw renders every entity through r.
func (s *Session) Draw(r Renderer) {
	s.entities.Draw(r, s)
}

// ForceAdvance ends the current turn at the end of the next frame regardless
// of who is playing.
func (s *Session) ForceAdvance() {
	s.advance = true
}

// Level returns the map. Callers must treat it as read-only.
func (s *Session) Level() *Level { return s.level }

// Fog returns the visibility field. Callers must treat it as read-only.
func (s *Session) Fog() *FogField { return s.fog }

// Entities returns every entity on the map.
func (s *Session) Entities() []*Entity { return s.entities.List() }

// Players returns the turn order.
func (s *Session) Players() []*Entity { return s.players }

// Buildings returns the capturable buildings.
func (s *Session) Buildings() []*Entity { return s.buildings }

// ActivePlayer returns the entity whose turn it is.
func (s *Session) ActivePlayer() *Entity {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Active()
}

// Scheduler exposes the turn order.
func (s *Session) Scheduler() *TurnScheduler { return s.scheduler }

// Turn returns the turn counter.
func (s *Session) Turn() int { return s.scheduler.Turn() }

// Frame returns the number of frames run so far.
func (s *Session) Frame() int { return s.frame }

// Elapsed returns total simulated seconds.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Stats returns a copy of the session counters.
func (s *Session) Stats() Stats { return s.stats }

// Events returns the structured event log.
func (s *Session) Events() *SimLog { return s.events }

// Config returns the configuration the session was built from.
func (s *Session) Config() Config { return s.cfg }

// PlayerIndex returns p's position in the turn order, or -1.
func (s *Session) PlayerIndex(p *Entity) int {
	for i, x := range s.players {
		if x == p {
			return i
		}
	}
	return -1
}

// Human returns the first human player, or nil if every player is an NPC.
func (s *Session) Human() *Entity {
	for _, p := range s.players {
		if !p.NPC {
			return p
		}
	}
	return nil
}
