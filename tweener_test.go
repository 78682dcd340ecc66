package tween

import (
	"errors"
	"testing"
)

func TestTweenRejectsValueTarget(t *testing.T) {
	tn := NewTweener()

	_, err := tn.Tween(object{}, map[string]float32{"X": 1}, 1, 0)
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("struct value target: err = %v, want ErrInvalidTarget", err)
	}

	var nilObj *object
	_, err = tn.Tween(nilObj, map[string]float32{"X": 1}, 1, 0)
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("nil pointer target: err = %v, want ErrInvalidTarget", err)
	}

	if tn.Len() != 0 {
		t.Errorf("Len = %d after failed Tween calls, want 0", tn.Len())
	}
}

func TestTweenBindingAllOrNothing(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	// One good name, one bad: nothing registers and nothing is written.
	_, err := tn.Tween(obj, map[string]float32{"X": 100, "Bogus": 1}, 1, 0)
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("err = %v, want *BindingError", err)
	}

	tn.Update(0.5)
	approx(t, obj.X, 0, "X after failed Tween")
	if tn.Len() != 0 {
		t.Errorf("Len = %d, want 0", tn.Len())
	}
}

func TestSameTargetInsertionOrderWins(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	// Both capture start X = 0; the later one writes last every tick.
	tn.Tween(obj, map[string]float32{"X": 100}, 1, 0)
	tn.Tween(obj, map[string]float32{"X": 200}, 1, 0)

	tn.Update(0.5)
	approx(t, obj.X, 100, "X mid-sweep (later tween wins)")

	tn.Update(0.5)
	approx(t, obj.X, 200, "X at end (later tween wins)")
}

func TestTweenCreatedInCallbackWaitsOneSweep(t *testing.T) {
	tn := NewTweener()
	a, b := &object{}, &object{}

	started := false
	tw, _ := tn.Tween(a, map[string]float32{"X": 100}, 1, 0)
	tw.OnUpdate(func(float32) {
		if !started {
			started = true
			tn.Tween(b, map[string]float32{"Y": 10}, 1, 0)
		}
	})

	// The tween staged inside the callback must not advance this sweep.
	tn.Update(0.5)
	approx(t, b.Y, 0, "Y on the staging sweep")

	tn.Update(0.5)
	approx(t, b.Y, 5, "Y one sweep later")
}

func TestCompletionCallbackCancelsSiblingSafely(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	// sibling is inserted first, so it has already advanced when the
	// canceller's completion fires later in the same sweep.
	sibling, _ := tn.Tween(obj, map[string]float32{"X": 100}, 2, 0)
	canceller := tn.Timer(0.5, 0)
	canceller.OnComplete(func() { sibling.Cancel() })

	tn.Update(0.5) // must not panic mid-iteration
	approx(t, obj.X, 25, "X advanced normally on the cancelling sweep")

	tn.Update(0.5)
	approx(t, obj.X, 25, "X frozen after cancellation")
	if tn.Len() != 0 {
		t.Errorf("Len = %d, want 0", tn.Len())
	}
}

func TestMidSweepCancelLetsVictimFinishTick(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	// The canceller is inserted first, so the sibling has not yet advanced
	// when the cancellation lands mid-sweep. The sibling must still finish
	// the tick it was due: iteration order cannot change a sweep's outcome.
	var sibling *Tween
	canceller := tn.Timer(0.5, 0)
	canceller.OnComplete(func() { sibling.Cancel() })
	sibling, _ = tn.Tween(obj, map[string]float32{"X": 100}, 2, 0)

	tn.Update(0.5)
	approx(t, obj.X, 25, "X after the cancelling sweep")

	tn.Update(0.5)
	approx(t, obj.X, 25, "X frozen once the cancellation reconciles")
	if tn.Len() != 0 {
		t.Errorf("Len = %d, want 0", tn.Len())
	}
}

func TestBulkCancelReachesStagedTweens(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	tn.Tween(obj, map[string]float32{"X": 100}, 1, 0)
	tn.Cancel() // before any Update: the staged tween must never run

	tn.Update(0.5)
	approx(t, obj.X, 0, "X after pre-admission bulk Cancel")
	if tn.Len() != 0 {
		t.Errorf("Len = %d, want 0", tn.Len())
	}
}

func TestTargetedPauseReachesStagedTweens(t *testing.T) {
	tn := NewTweener()
	a, b := &object{}, &object{}

	tn.Tween(a, map[string]float32{"X": 100}, 1, 0)
	tn.Tween(b, map[string]float32{"X": 100}, 1, 0)
	tn.PauseTarget(a) // both tweens are still staged, not yet live

	tn.Update(0.5)
	approx(t, a.X, 0, "a.X paused while still staged")
	approx(t, b.X, 50, "b.X unaffected")

	tn.ResumeTarget(a)
	tn.Update(0.5)
	approx(t, a.X, 50, "a.X after resume")
}

func TestCancelBeforeFirstUpdateNeverRuns(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	tw, _ := tn.Tween(obj, map[string]float32{"X": 100}, 1, 0)
	tw.Cancel()

	tn.Update(0.5)
	approx(t, obj.X, 0, "X of a tween cancelled before going live")
	if tn.Len() != 0 {
		t.Errorf("Len = %d, want 0", tn.Len())
	}
}

func TestCancelTargetScoped(t *testing.T) {
	tn := NewTweener()
	a, b := &object{}, &object{}

	tn.Tween(a, map[string]float32{"X": 100}, 1, 0)
	tn.Tween(b, map[string]float32{"X": 100}, 1, 0)
	tn.Update(0.25)

	tn.CancelTarget(a, &object{}) // unknown target silently ignored

	tn.Update(0.25)
	approx(t, a.X, 25, "a.X frozen by CancelTarget")
	approx(t, b.X, 50, "b.X still animating")
	if got := tn.TweensOf(a); got != nil {
		t.Errorf("TweensOf(a) = %d tweens, want none", len(got))
	}
	if got := tn.TweensOf(b); len(got) != 1 {
		t.Errorf("TweensOf(b) = %d tweens, want 1", len(got))
	}
}

func TestCancelGlobal(t *testing.T) {
	tn := NewTweener()
	a, b := &object{}, &object{}

	tn.Tween(a, map[string]float32{"X": 100}, 1, 0)
	tn.Tween(b, map[string]float32{"Y": 100}, 1, 0)
	tn.Update(0.25)

	tn.Cancel()
	tn.Update(0.25)

	approx(t, a.X, 25, "a.X after global Cancel")
	approx(t, b.Y, 25, "b.Y after global Cancel")
	if tn.Len() != 0 {
		t.Errorf("Len = %d, want 0", tn.Len())
	}
}

func TestCancelAndCompleteBulk(t *testing.T) {
	tn := NewTweener()
	a := &object{}

	completes := 0
	tw, _ := tn.Tween(a, map[string]float32{"X": 100}, 1, 0)
	tw.OnComplete(func() { completes++ })
	tn.Update(0.25)

	tn.CancelAndComplete()

	approx(t, tw.Completion(), 1, "Completion after bulk CancelAndComplete")
	tn.Update(0.25)
	approx(t, a.X, 25, "X keeps its last written value")
	if completes != 0 {
		t.Errorf("OnComplete fired %d times, want 0", completes)
	}
	if tn.Len() != 0 {
		t.Errorf("Len = %d, want 0", tn.Len())
	}
}

func TestPauseResumeTargeted(t *testing.T) {
	tn := NewTweener()
	a, b := &object{}, &object{}

	tn.Tween(a, map[string]float32{"X": 100}, 1, 0)
	tn.Tween(b, map[string]float32{"X": 100}, 1, 0)
	tn.Update(0.25)

	tn.PauseTarget(a)
	tn.Update(0.25)
	approx(t, a.X, 25, "a.X while paused")
	approx(t, b.X, 50, "b.X unaffected by PauseTarget(a)")

	tn.ResumeTarget(a)
	tn.Update(0.25)
	approx(t, a.X, 50, "a.X after resume")
}

func TestPauseToggleGlobal(t *testing.T) {
	tn := NewTweener()
	a := &object{}

	tn.Tween(a, map[string]float32{"X": 100}, 1, 0)
	tn.Update(0.25)

	tn.PauseToggle()
	tn.Update(0.25)
	approx(t, a.X, 25, "X after first toggle")

	tn.PauseToggle()
	tn.Update(0.25)
	approx(t, a.X, 50, "X after second toggle")
}

func TestTimerFiresAfterDelay(t *testing.T) {
	tn := NewTweener()

	fired := 0
	tm := tn.Timer(1, 0.5)
	tm.OnComplete(func() { fired++ })

	if tm.Looping() {
		t.Error("bare timer should not report Looping")
	}

	tn.Update(0.5) // delay
	tn.Update(0.5)
	if fired != 0 {
		t.Fatal("timer fired before its duration elapsed")
	}
	tn.Update(0.5)
	if fired != 1 {
		t.Errorf("timer fired %d times, want 1", fired)
	}
	if tn.Len() != 0 {
		t.Errorf("Len = %d after timer completion, want 0", tn.Len())
	}
}

func TestAddAdoptsExternalTween(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	tw, err := New(obj, map[string]float32{"X": 100}, 1, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tn.Add(tw)

	tn.Update(0.5)
	approx(t, obj.X, 50, "X driven by adopted tween")
	if got := tn.TweensOf(obj); len(got) != 1 || got[0] != tw {
		t.Errorf("TweensOf = %v, want the adopted tween", got)
	}
}

func TestTweensOfReturnsSnapshot(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	tn.Tween(obj, map[string]float32{"X": 100}, 1, 0)
	tn.Tween(obj, map[string]float32{"Y": 100}, 1, 0)
	tn.Update(0.1)

	got := tn.TweensOf(obj)
	if len(got) != 2 {
		t.Fatalf("TweensOf = %d tweens, want 2", len(got))
	}
	got[0] = nil // mutating the snapshot must not touch the registry

	tn.Update(0.1)
	approx(t, obj.X, 20, "X after snapshot mutation")
}

func TestDefaultIsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Error("Default returned different instances")
	}
}

func TestUpdateSteadyStateZeroAlloc(t *testing.T) {
	tn := NewTweener()
	obj := &object{}

	tw, _ := tn.Tween(obj, map[string]float32{"X": 100, "Y": 50}, 1000, 0)
	tw.Repeat(-1)

	// Warm up: first Update admits the staged tween.
	tn.Update(0.001)

	result := testing.AllocsPerRun(100, func() {
		tn.Update(0.001)
	})
	if result > 0 {
		t.Errorf("Update allocated %f times per run, want 0", result)
	}
}
