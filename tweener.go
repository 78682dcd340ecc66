package tween

import "sync"

// Tweener owns and schedules a set of live tweens, keyed by target identity.
// The host drives it by calling Update once per frame; nothing progresses
// otherwise. A Tweener is single-threaded — hosts that touch one from
// multiple goroutines must serialize access themselves.
//
// Structural changes are staged: tweens created or cancelled during a sweep
// take effect when the sweep's reconciliation runs, never mid-iteration, so
// callbacks may freely create and cancel tweens.
type Tweener struct {
	order  []*Tween         // every live tween, in insertion order
	active map[any][]*Tween // per-target, insertion order preserved

	adds    []*Tween
	removes []*Tween

	resolver Resolver
	sentinel *timerTarget
}

// timerTarget is the private keying token for property-less timer tweens.
// Non-zero size so each Tweener's sentinel has a distinct address.
type timerTarget struct{ _ int8 }

// NewTweener returns an empty registry that resolves properties with
// FieldResolver.
func NewTweener() *Tweener {
	return &Tweener{
		active:   make(map[any][]*Tween),
		resolver: FieldResolver{},
		sentinel: &timerTarget{},
	}
}

// Default returns the lazily-constructed process-wide Tweener, for hosts
// that don't care to own one. Registries created with NewTweener are fully
// independent of it.
var Default = sync.OnceValue(NewTweener)

// SetResolver replaces the binding strategy used by subsequent Tween calls.
// Existing tweens keep the bindings they resolved at construction.
func (tn *Tweener) SetResolver(r Resolver) {
	tn.resolver = r
}

// Tween begins animating the named numeric properties of target from their
// current values to the values in to, over duration seconds, after an
// optional delay. The returned Tween is staged and joins the live set at the
// next Update's reconciliation; configure it fluently before then.
//
// Binding is all-or-nothing: if any name in to fails to resolve, the call
// returns a *BindingError and nothing is registered or written. A non-pointer
// or nil target fails with ErrInvalidTarget. An empty to yields a bare timer
// tween with no tracked properties.
//
// Delays consume whole ticks: when a tick overshoots the remaining delay,
// the excess is dropped rather than rolled into running time.
func (tn *Tweener) Tween(target any, to map[string]float32, duration, delay float32) (*Tween, error) {
	t, err := newTween(tn.resolver, target, to, duration, delay)
	if err != nil {
		return nil, err
	}
	tn.adopt(t)
	return t, nil
}

// Timer schedules a property-less tween against a private sentinel target.
// Pair it with OnComplete for delayed one-shot callbacks, or Repeat for a
// recurring pulse.
func (tn *Tweener) Timer(duration, delay float32) *Tween {
	t := &Tween{
		target:   tn.sentinel,
		resolver: tn.resolver,
		duration: duration,
		delay:    delay,
	}
	tn.adopt(t)
	return t
}

// Add adopts a Tween built with New, staging it for the next sweep. The
// tween must not already belong to another Tweener.
func (tn *Tweener) Add(t *Tween) {
	tn.adopt(t)
}

func (tn *Tweener) adopt(t *Tween) {
	t.parent = tn
	tn.adds = append(tn.adds, t)
}

// Update advances every live tween by dt seconds. Tweens staged since the
// last sweep join the live set first, so a tween created between frames
// advances on the very next Update; tweens staged during the sweep itself
// wait for the following one. Removals reconcile strictly after the sweep:
// a tween cancelled between frames stays frozen, while one cancelled
// mid-sweep by a callback still finishes the tick it was due, whatever its
// position in the iteration. Call once per frame with the frame's delta
// time.
func (tn *Tweener) Update(dt float32) {
	tn.admit()
	for _, t := range tn.removes {
		// Staged for removal before this sweep began: writes stop now,
		// detach happens in reconcile.
		t.skipSweep = true
	}
	for _, t := range tn.order {
		if t.skipSweep {
			continue
		}
		t.elapsed = dt
		t.advance()
	}
	tn.reconcile()
}

// admit moves staged additions into the live set. A tween that was both
// staged and cancelled before ever going live is dropped here.
func (tn *Tweener) admit() {
	for _, t := range tn.adds {
		if t.removal {
			continue
		}
		tn.order = append(tn.order, t)
		tn.active[t.target] = append(tn.active[t.target], t)
	}
	tn.adds = tn.adds[:0]
}

func (tn *Tweener) reconcile() {
	for _, t := range tn.removes {
		tn.detach(t)
	}
	tn.removes = tn.removes[:0]
}

func (tn *Tweener) detach(t *Tween) {
	tn.order = removeTween(tn.order, t)
	list := removeTween(tn.active[t.target], t)
	if len(list) == 0 {
		delete(tn.active, t.target)
	} else {
		tn.active[t.target] = list
	}
	t.parent = nil
	t.skipSweep = false
}

func removeTween(list []*Tween, t *Tween) []*Tween {
	for i, cur := range list {
		if cur == t {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// each applies fn to every tracked tween: the live set plus additions still
// staged for admission, so bulk control reaches tweens created since the
// last sweep.
func (tn *Tweener) each(fn func(*Tween)) {
	for _, t := range tn.order {
		fn(t)
	}
	for _, t := range tn.adds {
		fn(t)
	}
}

// eachTarget applies fn to the tweens animating any of the given targets,
// live or staged, looked up by identity. Unknown targets are silently
// ignored.
func (tn *Tweener) eachTarget(targets []any, fn func(*Tween)) {
	for _, target := range targets {
		for _, t := range tn.active[target] {
			fn(t)
		}
	}
	for _, t := range tn.adds {
		for _, target := range targets {
			if t.target == target {
				fn(t)
				break
			}
		}
	}
}

// Cancel stages every tracked tween for removal without firing completions.
func (tn *Tweener) Cancel() {
	tn.each((*Tween).Cancel)
}

// CancelTarget cancels only the tweens animating the given targets.
func (tn *Tweener) CancelTarget(targets ...any) {
	tn.eachTarget(targets, (*Tween).Cancel)
}

// CancelAndComplete applies Tween.CancelAndComplete to every tracked tween.
func (tn *Tweener) CancelAndComplete() {
	tn.each((*Tween).CancelAndComplete)
}

// CancelAndCompleteTarget applies Tween.CancelAndComplete to the tweens
// animating the given targets.
func (tn *Tweener) CancelAndCompleteTarget(targets ...any) {
	tn.eachTarget(targets, (*Tween).CancelAndComplete)
}

// Pause suspends every tracked tween.
func (tn *Tweener) Pause() {
	tn.each((*Tween).Pause)
}

// PauseTarget suspends the tweens animating the given targets.
func (tn *Tweener) PauseTarget(targets ...any) {
	tn.eachTarget(targets, (*Tween).Pause)
}

// PauseToggle flips the paused flag on every tracked tween.
func (tn *Tweener) PauseToggle() {
	tn.each((*Tween).PauseToggle)
}

// PauseToggleTarget flips the paused flag on the tweens animating the given
// targets.
func (tn *Tweener) PauseToggleTarget(targets ...any) {
	tn.eachTarget(targets, (*Tween).PauseToggle)
}

// Resume unsuspends every tracked tween.
func (tn *Tweener) Resume() {
	tn.each((*Tween).Resume)
}

// ResumeTarget unsuspends the tweens animating the given targets.
func (tn *Tweener) ResumeTarget(targets ...any) {
	tn.eachTarget(targets, (*Tween).Resume)
}

// Len reports the number of live tweens. Staged additions don't count until
// the next Update reconciles them.
func (tn *Tweener) Len() int {
	return len(tn.order)
}

// TweensOf returns a snapshot of the live tweens currently animating target,
// in insertion order. The registry does not retain the returned slice.
func (tn *Tweener) TweensOf(target any) []*Tween {
	list := tn.active[target]
	if len(list) == 0 {
		return nil
	}
	out := make([]*Tween, len(list))
	copy(out, list)
	return out
}
