package game

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// MapConfig controls level generation.
type MapConfig struct {
	Size         int     `yaml:"size"`
	Density      float64 `yaml:"density"`       // initial blocked probability
	Border       int     `yaml:"border"`        // blocked band width
	BlockDensity float64 `yaml:"block_density"` // 2x2 blocks stamped for decoration
	RoadAttempts int     `yaml:"road_attempts"`
	MaxRoads     int     `yaml:"max_roads"`
	GroundChance float64 `yaml:"ground_chance"` // chance of a ground variant per empty cell
	ClearSpawn   bool    `yaml:"clear_spawn"`   // open the 3x3 area around each spawn
}

// PlayerConfig describes one participant in the turn order.
type PlayerConfig struct {
	Name     string `yaml:"name"`
	NPC      bool   `yaml:"npc"`
	Budget   int    `yaml:"budget"`   // steps per turn
	Tile     int    `yaml:"tile"`     // sprite id
	Quadrant int    `yaml:"quadrant"` // 1..4, 0 = by turn order
}

// BuildingConfig controls capturable buildings.
type BuildingConfig struct {
	Count      int `yaml:"count"`
	Tile       int `yaml:"tile"`
	SelectTile int `yaml:"select_tile"`
}

// FogConfig controls how much fog a settled entity clears.
type FogConfig struct {
	Radius float64 `yaml:"radius"`
}

// MotionConfig controls step animation.
type MotionConfig struct {
	StepDuration float64 `yaml:"step_duration"` // seconds per grid step
	Easing       string  `yaml:"easing"`
}

// AIConfig tunes the computer-controlled decision policy.
type AIConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // random targets tried before skipping the turn
}

// PatternLayer is one named tile replacement pass.
type PatternLayer struct {
	Name     string    `yaml:"name"`
	Patterns []Pattern `yaml:"patterns"`
}

// TileConfig lists sprite ids used by generation and drawing.
type TileConfig struct {
	Ground []int          `yaml:"ground"`
	Roads  []int          `yaml:"roads"`
	Layers []PatternLayer `yaml:"layers"`
	Flags  []int          `yaml:"flags"`
	Cursor int            `yaml:"cursor"`
}

// Config is the full set of session parameters.
type Config struct {
	Seed      int64          `yaml:"seed"`
	Map       MapConfig      `yaml:"map"`
	Players   []PlayerConfig `yaml:"players"`
	Buildings BuildingConfig `yaml:"buildings"`
	Fog       FogConfig      `yaml:"fog"`
	Motion    MotionConfig   `yaml:"motion"`
	AI        AIConfig       `yaml:"ai"`
	Tiles     TileConfig     `yaml:"tiles"`

	// Logger receives structured session logs; nil means slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

var (
	ErrNoPlayers     = errors.New("at least one player is required")
	ErrInvalidConfig = errors.New("invalid config")
)

// DefaultConfig returns a four player setup: one human, three NPCs.
func DefaultConfig() Config {
	return Config{
		Seed: 1,
		Map: MapConfig{
			Size:         64,
			Density:      0.40,
			Border:       2,
			BlockDensity: 0.25,
			RoadAttempts: 10,
			MaxRoads:     30,
			GroundChance: 0.15,
			ClearSpawn:   true,
		},
		Players: []PlayerConfig{
			{Name: "Player", NPC: false, Budget: 16, Tile: 65, Quadrant: 1},
			{Name: "CPU 1", NPC: true, Budget: 8, Tile: 66, Quadrant: 2},
			{Name: "CPU 2", NPC: true, Budget: 8, Tile: 67, Quadrant: 3},
			{Name: "CPU 3", NPC: true, Budget: 8, Tile: 68, Quadrant: 4},
		},
		Buildings: BuildingConfig{Count: 6, Tile: 59, SelectTile: 49},
		Fog:       FogConfig{Radius: 8},
		Motion:    MotionConfig{StepDuration: 0.25, Easing: "linear"},
		AI:        AIConfig{MaxAttempts: 32},
		Tiles: TileConfig{
			Ground: []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14},
			Roads:  []int{43, 44},
			Layers: []PatternLayer{
				{Name: "trees", Patterns: []Pattern{
					{{19, 20}, {35, 36}},
					{{21, 22}, {35, 36}},
					{{37, 38}, {35, 36}},
					{{23, 24}, {39, 40}},
				}},
				{Name: "rocks", Patterns: []Pattern{
					{{16}}, {{17}}, {{18}}, {{32}}, {{34}}, {{48}}, {{50}},
				}},
			},
			Flags:  []int{51, 52, 53, 54},
			Cursor: 95,
		},
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	m := c.Map
	if m.Size < 4 {
		bad("map.size %d is below 4", m.Size)
	}
	if m.Density < 0 || m.Density > 1 {
		bad("map.density %.2f outside [0,1]", m.Density)
	}
	if m.BlockDensity < 0 || m.BlockDensity > 1 {
		bad("map.block_density %.2f outside [0,1]", m.BlockDensity)
	}
	if m.Border < 0 || 2*m.Border >= m.Size {
		bad("map.border %d leaves no playable area on a %d map", m.Border, m.Size)
	}
	if m.GroundChance < 0 || m.GroundChance > 1 {
		bad("map.ground_chance %.2f outside [0,1]", m.GroundChance)
	}

	if len(c.Players) == 0 {
		errs = append(errs, ErrNoPlayers)
	}
	for i, p := range c.Players {
		if p.Budget <= 0 {
			bad("players[%d].budget must be positive", i)
		}
		if p.Quadrant < 0 || p.Quadrant > 4 {
			bad("players[%d].quadrant %d: %v", i, p.Quadrant, ErrInvalidQuadrant)
		}
	}
	if c.Buildings.Count < 0 {
		bad("buildings.count must not be negative")
	}
	if c.Fog.Radius < 0 {
		bad("fog.radius must not be negative")
	}
	if c.Motion.StepDuration < 0 {
		bad("motion.step_duration must not be negative")
	}
	if _, ok := EasingByName(c.Motion.Easing); !ok {
		bad("motion.easing %q is unknown", c.Motion.Easing)
	}
	if c.AI.MaxAttempts <= 0 {
		bad("ai.max_attempts must be positive")
	}
	if _, err := c.PatternSets(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	return errors.Join(errs...)
}

// PatternSets compiles the configured replacement layers in order.
func (c Config) PatternSets() ([]*PatternSet, error) {
	sets := make([]*PatternSet, 0, len(c.Tiles.Layers))
	for i, l := range c.Tiles.Layers {
		ps, err := NewPatternSet(l.Patterns)
		if err != nil {
			return nil, fmt.Errorf("tiles.layers[%d] %q: %w", i, l.Name, err)
		}
		sets = append(sets, ps)
	}
	return sets, nil
}
