package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
)

// TestSim is a headless session harness used by tests and the headless
// report. It supports hand-drawn maps, pinned spawns and deterministic seeds.
type TestSim struct {
	Config  Config
	Session *Session
	SimLog  *SimLog
	DT      float64 // seconds per frame

	rows      []string
	players   []PlayerConfig
	spawns    []Cell
	buildings []Cell
	pinned    bool
	verbose   bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, map, verbose, config tweaks
	simOptEntity                      // players and buildings
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Config.Seed = seed
	}}
}

// WithMapSize sets the side of a generated map.
func WithMapSize(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Config.Map.Size = n
	}}
}

// WithLevel uses a hand-drawn map instead of a generated one.
// '#' is blocked, anything else is open. Rows must be the same length.
func WithLevel(rows ...string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rows = rows
	}}
}

// WithVerbose enables per-step logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithConfig applies an arbitrary change to the session config.
func WithConfig(fn func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		fn(&ts.Config)
	}}
}

// WithPlayer adds a player spawned at (x,y). Once any player is added the
// configured roster is replaced.
func WithPlayer(name string, npc bool, budget, x, y int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.players = append(ts.players, PlayerConfig{
			Name:   name,
			NPC:    npc,
			Budget: budget,
			Tile:   65 + len(ts.players),
		})
		ts.spawns = append(ts.spawns, Cell{X: x, Y: y})
		ts.pinned = true
	}}
}

// WithBuilding places a 2x2 building with its top-left corner at (x,y).
func WithBuilding(x, y int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.buildings = append(ts.buildings, Cell{X: x, Y: y})
		ts.pinned = true
	}}
}

// NewTestSim constructs a TestSim from the given options in two passes:
//  1. Infrastructure (seed, map, verbose, config)
//  2. Players and buildings
//
// It panics on an invalid setup; tests should not continue past one.
func NewTestSim(opts ...SimOption) *TestSim {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := &TestSim{Config: cfg, DT: 1.0 / 60}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	if len(ts.players) > 0 {
		ts.Config.Players = ts.players
	}
	ts.SimLog = NewSimLog(ts.verbose)

	rng := rand.New(rand.NewSource(ts.Config.Seed)) // #nosec G404 -- test harness
	var lv *Level
	if len(ts.rows) > 0 {
		lv = NewLevel(parseRows(ts.rows))
		ts.Config.Map.Size = lv.Size
	} else {
		var err error
		if lv, err = BuildLevel(ts.Config, rng); err != nil {
			panic(fmt.Sprintf("test sim: %v", err))
		}
	}

	var fixed *layout
	if ts.pinned {
		fixed = &layout{spawns: ts.spawns, buildings: ts.buildings}
	}
	s, err := newSession(ts.Config, lv, rng, fixed, ts.SimLog)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Session = s
	return ts
}

func parseRows(rows []string) *Grid {
	g := make([][]int, len(rows))
	for y, r := range rows {
		g[y] = make([]int, len(r))
		for x, ch := range r {
			if ch == '#' {
				g[y][x] = Blocked
			}
		}
	}
	return GridFromRows(g)
}

// RunFrames advances the session n frames.
func (ts *TestSim) RunFrames(n int) {
	for i := 0; i < n; i++ {
		ts.Session.Update(ts.DT)
	}
}

// RunUntil advances up to maxFrames, stopping early if predicate returns
// true. Returns the frame at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		ts.Session.Update(ts.DT)
		if predicate(ts) {
			return ts.Session.Frame()
		}
	}
	return -1
}

// RunTurns advances until turn n has started or maxFrames is reached.
func (ts *TestSim) RunTurns(n, maxFrames int) bool {
	return ts.RunUntil(func(ts *TestSim) bool { return ts.Session.Turn() >= n }, maxFrames) >= 0
}

// Player returns the player with the given name, or nil.
func (ts *TestSim) Player(name string) *Entity {
	for _, p := range ts.Session.Players() {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// SimSnapshot is a lightweight summary of the session at one frame.
type SimSnapshot struct {
	Frame    int
	Turn     int
	Revealed float64
	Players  []PlayerSnapshot
}

// PlayerSnapshot is a copy of one player's state.
type PlayerSnapshot struct {
	Name      string
	Cell      Cell
	Steps     int
	State     MoveState
	Buildings int
}

// Snapshot returns the current state of all players.
func (ts *TestSim) Snapshot() SimSnapshot {
	s := ts.Session
	snap := SimSnapshot{Frame: s.Frame(), Turn: s.Turn(), Revealed: s.Fog().Revealed()}
	for _, p := range s.Players() {
		snap.Players = append(snap.Players, PlayerSnapshot{
			Name:      p.Name,
			Cell:      p.Cell,
			Steps:     p.StepsRemaining,
			State:     p.State,
			Buildings: len(s.Owned(p)),
		})
	}
	return snap
}
