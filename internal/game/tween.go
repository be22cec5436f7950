package game

import "strings"

// Vec2 is a continuous 2D value.
type Vec2 struct {
	X, Y float64
}

// Lerp interpolates component-wise between a and b.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Built-in easings.
func Linear(t float64) float64      { return t }
func EaseInQuad(t float64) float64  { return t * t }
func EaseOutQuad(t float64) float64 { return t * (2 - t) }
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

var easings = map[string]Easing{
	"linear":           Linear,
	"ease-in-quad":     EaseInQuad,
	"ease-out-quad":    EaseOutQuad,
	"ease-in-out-quad": EaseInOutQuad,
}

// EasingByName resolves a config name; ok is false for unknown names.
func EasingByName(name string) (Easing, bool) {
	e, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Tween animates a Vec2 from Start to End over Duration seconds.
type Tween struct {
	Disabled bool

	start    Vec2
	end      Vec2
	duration float64
	elapsed  float64
	finished bool
	easing   Easing

	onTick     func(Vec2)
	onComplete func()
}

// TweenConfig holds the construction parameters for a Tween.
type TweenConfig struct {
	Start      Vec2
	End        Vec2
	Duration   float64
	Easing     Easing     // nil means Linear
	OnTick     func(Vec2)
	OnComplete func()
}

// NewTween creates a tween ready to run its first leg.
func NewTween(cfg TweenConfig) *Tween {
	t := &Tween{
		start:      cfg.Start,
		end:        cfg.End,
		duration:   cfg.Duration,
		easing:     cfg.Easing,
		onTick:     cfg.OnTick,
		onComplete: cfg.OnComplete,
	}
	if t.easing == nil {
		t.easing = Linear
	}
	if t.onTick == nil {
		t.onTick = func(Vec2) {}
	}
	return t
}

// Update advances the tween by dt seconds. Crossing the duration finishes the
// tween in the same call: completion fires once, then the tick callback gets
// the exact end value.
func (t *Tween) Update(dt float64) {
	if t.Disabled || t.finished {
		return
	}
	t.elapsed += dt
	if t.elapsed < t.duration {
		p := t.easing(t.elapsed / t.duration)
		t.onTick(Lerp(t.start, t.end, p))
		return
	}
	t.finished = true
	if t.onComplete != nil {
		t.onComplete()
	}
	t.onTick(t.end)
}

// Reset rearms the tween for a new leg. A duration <= 0 keeps the old one.
func (t *Tween) Reset(start, end Vec2, duration float64) {
	t.start = start
	t.end = end
	if duration > 0 {
		t.duration = duration
	}
	t.elapsed = 0
	t.finished = false
	t.Disabled = false
}

// Finished reports whether the current leg has completed.
func (t *Tween) Finished() bool {
	return t.finished
}

// Progress returns elapsed/duration clamped to [0,1].
func (t *Tween) Progress() float64 {
	if t.duration <= 0 || t.elapsed >= t.duration {
		return 1
	}
	return t.elapsed / t.duration
}

// End returns the destination of the current leg.
func (t *Tween) End() Vec2 {
	return t.end
}
