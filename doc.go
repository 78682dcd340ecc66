// Package tween animates named numeric properties on arbitrary Go objects,
// interpolating them from their current values to target values over a
// duration, with optional delay, easing, repeats, and lifecycle callbacks.
//
// The engine is driven entirely by the host: create a [Tweener], start
// tweens on it, and call [Tweener.Update] once per frame with the frame's
// delta time. Nothing runs in the background.
//
// # Quick start
//
//	type Sprite struct{ X, Y, Angle float32 }
//
//	tn := tween.NewTweener()
//	s := &Sprite{}
//
//	tn.Tween(s, map[string]float32{"X": 100, "Y": 40}, 1.5, 0)
//
//	// per frame:
//	tn.Update(dt)
//
// [Tweener.Tween] returns the new [Tween] for fluent configuration:
//
//	t, err := tn.Tween(s, map[string]float32{"Angle": 270}, 2, 0.5)
//	if err != nil {
//		// unknown or non-numeric field, or s is not a pointer
//	}
//	t.Ease(ease.OutBounce).Repeat(-1).Reflect().OnComplete(func() { ... })
//
// Easing functions come from gween's ease package; any ease.TweenFunc
// works, including ones that overshoot like ease.OutElastic.
//
// # Property binding
//
// By default properties are exported struct fields of any integer or float
// kind, resolved by reflection and coerced to and from float32
// ([FieldResolver]). Hosts that want to avoid reflection install a
// [MapResolver] — an explicit name-to-accessor table — or any custom
// [Resolver] via [Tweener.SetResolver].
//
// Targets are keyed by identity, so they must be pointers. Bulk operations
// ([Tweener.CancelTarget], [Tweener.PauseTarget], ...) act on everything
// animating a given target.
//
// # Update model
//
// One [Tweener.Update] advances every live tween once: delay burns down
// first, then each tick fires OnBegin (first tick of a cycle) and OnUpdate,
// moves time forward, writes the interpolated values through the bindings,
// and fires OnComplete when a cycle ends with no repeats left. Structural
// changes — new tweens, cancellations, completions — are staged and applied
// only after the sweep, so callbacks may create and cancel tweens freely,
// even ones the current sweep is iterating.
//
// The package is not goroutine-safe; drive each Tweener from one goroutine
// (in Ebitengine, the game's Update method is the natural place).
//
// ease package: https://pkg.go.dev/github.com/tanema/gween/ease
package tween
