package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_ShippedDefaultsMatch(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "default.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 77
map:
  size: 32
fog:
  radius: 5
motion:
  easing: ease-out-quad
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(77), cfg.Seed)
	assert.Equal(t, 32, cfg.Map.Size)
	assert.Equal(t, 5.0, cfg.Fog.Radius)
	assert.Equal(t, "ease-out-quad", cfg.Motion.Easing)
	assert.Equal(t, 0.40, cfg.Map.Density, "unset fields keep their defaults")
	assert.Len(t, cfg.Players, 4)
}

func TestLoadConfig_ReportsEveryProblem(t *testing.T) {
	path := writeConfig(t, `
map:
  size: 2
  density: 1.5
players:
  - {name: Solo, budget: 0, quadrant: 7}
motion:
  easing: wobble
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	msg := err.Error()
	for _, want := range []string{"map.size", "map.density", "players[0].budget", "players[0].quadrant", "motion.easing"} {
		assert.Contains(t, msg, want)
	}
}

func TestLoadConfig_BadPatternLayer(t *testing.T) {
	path := writeConfig(t, `
tiles:
  layers:
    - name: rubble
      patterns:
        - [[1, 2], [3]]
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRaggedPattern)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_Malformed(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "map: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
