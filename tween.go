package tween

import (
	"maps"
	"math"
	"slices"

	"github.com/tanema/gween/ease"
)

// behavior flags modify how interpolated values are produced. They are
// independently combinable.
type behavior uint8

const (
	behaviorReflect  behavior = 1 << iota // swap direction at each cycle boundary
	behaviorRotation                      // treat values as degrees, shortest path, normalize [0,360)
	behaviorRound                         // round committed values to the nearest integer
)

// Tween animates a set of named numeric properties on one target from their
// current values to given end values over a duration. Create one with
// Tweener.Tween (or New followed by Tweener.Add) and configure it through
// the fluent methods before the next Tweener.Update.
//
// A Tween is owned by exactly one Tweener at a time and is driven solely by
// that Tweener's Update; it never advances on its own.
type Tween struct {
	target   any
	parent   *Tweener
	resolver Resolver

	duration float32
	delay    float32
	elapsed  float32 // per-sweep delta, set by the owning Tweener, consumed once
	time     float32 // position within the current cycle, in [0, duration]

	repeatCount int
	flags       behavior
	easer       ease.TweenFunc

	// Parallel, index-aligned per-property state. span is signed: end - start.
	names    []string
	bindings []Binding
	start    []float32
	span     []float32
	end      []float32

	onBegin    func()
	onUpdate   func(progress float32)
	onComplete func()

	paused    bool
	done      bool // terminal: no further time progression or callbacks
	removal   bool // staged for removal from parent
	skipSweep bool // removal was staged before the current sweep began
}

// New constructs a Tween not yet owned by any Tweener, for hosts that build
// tweens up front and adopt them later with Tweener.Add. Fields are resolved
// with FieldResolver; to is a map from exported field name to end value, and
// each field's current value becomes its start. Resolution is all-or-nothing:
// if any name fails, no tween is returned and nothing was written.
//
// Most callers want Tweener.Tween instead.
func New(target any, to map[string]float32, duration, delay float32) (*Tween, error) {
	return newTween(FieldResolver{}, target, to, duration, delay)
}

func newTween(r Resolver, target any, to map[string]float32, duration, delay float32) (*Tween, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	t := &Tween{
		target:   target,
		resolver: r,
		duration: duration,
		delay:    delay,
	}
	if len(to) == 0 {
		return t, nil
	}
	t.names = slices.Sorted(maps.Keys(to))
	t.bindings = make([]Binding, len(t.names))
	t.start = make([]float32, len(t.names))
	t.span = make([]float32, len(t.names))
	t.end = make([]float32, len(t.names))
	for i, name := range t.names {
		b, err := r.Resolve(target, name, true)
		if err != nil {
			return nil, err
		}
		t.bindings[i] = b
		t.start[i] = b.Get()
		t.end[i] = to[name]
		t.span[i] = t.end[i] - t.start[i]
	}
	return t, nil
}

// advance moves the tween forward by the delta the owning Tweener staged in
// elapsed. Called at most once per sweep.
func (t *Tween) advance() {
	if t.paused || t.done {
		return
	}
	dt := t.elapsed
	if t.delay > 0 {
		// The delay consumes the whole tick, even when dt overshoots the
		// remaining delay; no remainder rolls into the first running tick.
		t.delay -= dt
		return
	}
	if t.time == 0 && t.onBegin != nil {
		t.onBegin()
	}
	if t.onUpdate != nil {
		// Progress as of the start of this tick, before time advances.
		t.onUpdate(t.time / t.duration)
	}
	t.time += dt
	p := t.time / t.duration

	completionDue := false
	if t.time >= t.duration {
		switch {
		case t.repeatCount > 0:
			t.repeatCount--
			t.time, p = 0, 0
			if t.flags&behaviorReflect != 0 {
				t.Reverse()
			}
		case t.repeatCount < 0:
			t.time, p = 0, 0
			if t.flags&behaviorReflect != 0 {
				t.Reverse()
			}
			completionDue = true
		default:
			t.time, p = t.duration, 1
			t.done = true
			t.requestRemoval()
			completionDue = true
		}
	}

	if t.easer != nil {
		p = t.easer(p, 0, 1, 1)
	}
	t.apply(p)

	if completionDue && t.onComplete != nil {
		t.onComplete()
	}
}

// apply writes the interpolated value of every tracked property through its
// binding. Properties are independent, so iteration order is unobservable.
func (t *Tween) apply(p float32) {
	for i := len(t.bindings) - 1; i >= 0; i-- {
		v := t.start[i] + t.span[i]*p
		if t.flags&behaviorRound != 0 {
			v = float32(math.Round(float64(v)))
		}
		if t.flags&behaviorRotation != 0 {
			v = float32(math.Mod(float64(v), 360))
			if v < 0 {
				v += 360
			}
		}
		t.bindings[i].Set(v)
	}
}

func (t *Tween) requestRemoval() {
	if t.removal || t.parent == nil {
		return
	}
	t.removal = true
	t.parent.removes = append(t.parent.removes, t)
}

// Ease sets the easing function applied to the normalized progress each
// tick. Any function from gween's ease package works (ease.Linear,
// ease.OutBounce, ...); eased progress may overshoot [0, 1], which is how
// elastic and back curves work. nil (the default) leaves progress linear.
func (t *Tween) Ease(fn ease.TweenFunc) *Tween {
	t.easer = fn
	return t
}

// OnBegin registers a callback fired on the first non-delayed tick of each
// cycle, before any property is written.
func (t *Tween) OnBegin(fn func()) *Tween {
	t.onBegin = fn
	return t
}

// OnUpdate registers a callback fired once per advance with the tween's
// progress as of the start of that tick, in [0, 1), before easing.
func (t *Tween) OnUpdate(fn func(progress float32)) *Tween {
	t.onUpdate = fn
	return t
}

// OnComplete registers a callback fired when a cycle finishes with no
// repeats remaining, or once per cycle for infinitely repeating tweens. It
// fires after the cycle's final property writes.
func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = fn
	return t
}

// Repeat schedules extra cycles after the current one: times > 0 repeats
// that many more times, times < 0 repeats forever, 0 restores run-once.
func (t *Tween) Repeat(times int) *Tween {
	t.repeatCount = times
	return t
}

// Reflect makes each repeat cycle play in the opposite direction of the one
// before it, producing a ping-pong effect. Has no effect without Repeat.
func (t *Tween) Reflect() *Tween {
	t.flags |= behaviorReflect
	return t
}

// Reverse swaps every property's start and end in place, so the remainder of
// the current cycle heads back where it came from. Reflect calls this at
// each cycle boundary; calling it twice restores the original direction.
func (t *Tween) Reverse() *Tween {
	for i := range t.span {
		t.end[i] = t.start[i]
		t.start[i] += t.span[i]
		t.span[i] = -t.span[i]
	}
	return t
}

// Rotation treats every property as an angle in degrees: each span is
// re-aimed along the shorter angular path, and committed values are
// normalized into [0, 360). Deltas within a degree of the antipodal 180 snap
// to exactly 180 so the direction choice cannot oscillate between frames.
func (t *Tween) Rotation() *Tween {
	t.flags |= behaviorRotation
	for i := range t.span {
		d := t.end[i] - t.start[i]
		abs := d
		if abs < 0 {
			abs = -abs
		}
		switch {
		case abs > 181:
			sign := float32(1)
			if d > 0 {
				sign = -1
			}
			t.span[i] = (360 - abs) * sign
		case abs < 179:
			t.span[i] = d
		default:
			t.span[i] = 180
		}
	}
	return t
}

// Round rounds every committed property value to the nearest integer (ties
// away from zero). Useful for pixel positions and other integral fields.
func (t *Tween) Round() *Tween {
	t.flags |= behaviorRound
	return t
}

// From re-anchors starting values. Tracked properties are written to the
// given value and restart from it, keeping their end fixed. Names not
// tracked by this tween are resolved on the target and written once as a
// plain side effect, without joining the interpolation.
func (t *Tween) From(values map[string]float32) error {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		v := values[name]
		if i := slices.Index(t.names, name); i >= 0 {
			t.bindings[i].Set(v)
			t.start[i] = v
			t.span[i] = t.end[i] - v
			continue
		}
		b, err := t.resolver.Resolve(t.target, name, true)
		if err != nil {
			return err
		}
		b.Set(v)
	}
	return nil
}

// Cancel stages the tween for removal from its Tweener. Property writes stop
// immediately; OnComplete does not fire. The structural removal happens at
// the end of the next Update sweep.
func (t *Tween) Cancel() {
	t.requestRemoval()
}

// CancelAndComplete marks the tween's time as finished and stages it for
// removal: Completion reports 1 and OnUpdate is cleared. "Complete" is
// bookkeeping only — neither a final interpolation pass nor the OnComplete
// callback happens. Use Cancel plus your own final writes if you need the
// end values committed.
func (t *Tween) CancelAndComplete() {
	t.time = t.duration
	t.onUpdate = nil
	t.done = true
	t.requestRemoval()
}

// Pause suspends the tween: while paused, neither the delay nor the cycle
// time advances and no callbacks fire.
func (t *Tween) Pause() {
	t.paused = true
}

// Resume clears a pause.
func (t *Tween) Resume() {
	t.paused = false
}

// PauseToggle flips the paused flag.
func (t *Tween) PauseToggle() {
	t.paused = !t.paused
}

// Paused reports whether the tween is currently suspended.
func (t *Tween) Paused() bool {
	return t.paused
}

// Target returns the object this tween animates. Timer tweens return the
// owning Tweener's private sentinel.
func (t *Tween) Target() any {
	return t.target
}

// TimeRemaining reports the seconds left in the current cycle, excluding any
// remaining delay.
func (t *Tween) TimeRemaining() float32 {
	return t.duration - t.time
}

// Completion reports progress through the current cycle, clamped to [0, 1].
// It reads 0 while the delay is still running and 1 after the tween has
// finished, including after CancelAndComplete.
func (t *Tween) Completion() float32 {
	if t.duration <= 0 {
		if t.done {
			return 1
		}
		return 0
	}
	p := t.time / t.duration
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Looping reports whether more cycles remain after the current one.
func (t *Tween) Looping() bool {
	return t.repeatCount != 0
}
