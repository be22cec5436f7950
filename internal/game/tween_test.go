package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTween_ReachesEndExactly(t *testing.T) {
	var got []Vec2
	completed := 0
	tw := NewTween(TweenConfig{
		Start:      Vec2{0, 0},
		End:        Vec2{4, 2},
		Duration:   1,
		OnTick:     func(v Vec2) { got = append(got, v) },
		OnComplete: func() { completed++ },
	})

	tw.Update(0.5)
	require.Len(t, got, 1)
	assert.InDelta(t, 2, got[0].X, 1e-9)
	assert.InDelta(t, 1, got[0].Y, 1e-9)
	assert.False(t, tw.Finished())

	tw.Update(0.6)
	assert.True(t, tw.Finished())
	assert.Equal(t, 1, completed)
	assert.Equal(t, Vec2{4, 2}, got[len(got)-1])

	tw.Update(1)
	assert.Equal(t, 1, completed, "completion must fire once")
	assert.Len(t, got, 2, "finished tween must not tick")
}

func TestTween_ZeroDurationFinishesImmediately(t *testing.T) {
	var last Vec2
	tw := NewTween(TweenConfig{
		Start:  Vec2{1, 1},
		End:    Vec2{3, 3},
		OnTick: func(v Vec2) { last = v },
	})
	tw.Update(0)
	assert.True(t, tw.Finished())
	assert.Equal(t, Vec2{3, 3}, last)
	assert.Equal(t, 1.0, tw.Progress())
}

func TestTween_ResetRearms(t *testing.T) {
	completed := 0
	tw := NewTween(TweenConfig{Duration: 0.25, OnComplete: func() { completed++ }})
	tw.Update(0.3)
	require.True(t, tw.Finished())

	tw.Reset(Vec2{0, 0}, Vec2{1, 0}, 0)
	assert.False(t, tw.Finished())
	assert.Equal(t, Vec2{1, 0}, tw.End())
	assert.Zero(t, tw.Progress())

	tw.Update(0.2)
	assert.False(t, tw.Finished(), "reset with duration 0 keeps the old duration")
	tw.Update(0.1)
	assert.True(t, tw.Finished())
	assert.Equal(t, 2, completed)
}

func TestTween_Disabled(t *testing.T) {
	ticks := 0
	tw := NewTween(TweenConfig{Duration: 1, OnTick: func(Vec2) { ticks++ }})
	tw.Disabled = true
	tw.Update(2)
	assert.Zero(t, ticks)
	assert.False(t, tw.Finished())

	tw.Reset(Vec2{}, Vec2{1, 1}, 1)
	assert.False(t, tw.Disabled, "reset re-enables")
}

func TestEasings(t *testing.T) {
	for _, name := range []string{"linear", "ease-in-quad", "ease-out-quad", "ease-in-out-quad"} {
		e, ok := EasingByName(name)
		require.True(t, ok, name)
		assert.InDelta(t, 0, e(0), 1e-9, name)
		assert.InDelta(t, 1, e(1), 1e-9, name)
		prev := -1.0
		for i := 0; i <= 20; i++ {
			v := e(float64(i) / 20)
			assert.GreaterOrEqual(t, v, prev, "%s must be monotonic", name)
			prev = v
		}
	}
	assert.InDelta(t, 0.25, EaseInQuad(0.5), 1e-9)
	assert.InDelta(t, 0.75, EaseOutQuad(0.5), 1e-9)
	assert.InDelta(t, 0.5, EaseInOutQuad(0.5), 1e-9)

	_, ok := EasingByName("bounce")
	assert.False(t, ok)
	_, ok = EasingByName(" Linear ")
	assert.True(t, ok)
}

func TestLerp(t *testing.T) {
	v := Lerp(Vec2{0, 10}, Vec2{10, 0}, 0.3)
	assert.InDelta(t, 3, v.X, 1e-9)
	assert.InDelta(t, 7, v.Y, 1e-9)
	assert.False(t, math.IsNaN(v.X))
}
