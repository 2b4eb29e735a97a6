package keymode

import (
	"testing"
	"time"
)

func TestSingleBacktickTogglesWindowMode(t *testing.T) {
	var s State
	t0 := time.Now()
	if literal := s.ToggleBacktick(t0); literal {
		t.Fatal("single tap should not request a literal backtick")
	}
	if s.Mode != WindowMode || s.Sub != Navigation {
		t.Fatalf("expected WindowMode/Navigation after single tap, got mode=%v sub=%v", s.Mode, s.Sub)
	}
}

func TestDoubleBacktickWithinThresholdCancelsAndSendsLiteral(t *testing.T) {
	var s State
	t0 := time.Now()
	s.ToggleBacktick(t0)
	literal := s.ToggleBacktick(t0.Add(50 * time.Millisecond))
	if !literal {
		t.Fatal("expected second rapid tap to request a literal backtick")
	}
	if s.Mode != Normal {
		t.Fatalf("expected mode to return to Normal after cancel, got %v", s.Mode)
	}
}

func TestBacktickAfterThresholdIsANewToggle(t *testing.T) {
	var s State
	t0 := time.Now()
	s.ToggleBacktick(t0)
	literal := s.ToggleBacktick(t0.Add(400 * time.Millisecond))
	if literal {
		t.Fatal("a tap after the threshold should be a fresh toggle, not a cancel")
	}
	if s.Mode != Normal {
		t.Fatalf("expected second independent toggle to flip back to Normal, got %v", s.Mode)
	}
}

func TestMoveResizeReturnToNavigation(t *testing.T) {
	var s State
	s.EnterWindowMode()
	s.EnterMove()
	if s.Sub != Move {
		t.Fatal("expected Move sub-mode")
	}
	s.ReturnToNavigation()
	if s.Sub != Navigation {
		t.Fatal("expected return to Navigation")
	}
}

func TestStepAccelerates(t *testing.T) {
	var s State
	t0 := time.Now()
	first := s.Step(t0)
	if first != minStep {
		t.Fatalf("expected first step to be minStep, got %d", first)
	}
	last := first
	for i := 1; i <= accelAfter+2; i++ {
		last = s.Step(t0.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	if last <= first {
		t.Fatalf("expected sustained holding to accelerate the step, first=%d last=%d", first, last)
	}
	if last > maxStep {
		t.Fatalf("step exceeded maxStep: %d", last)
	}
}

func TestStepResetsAfterGap(t *testing.T) {
	var s State
	t0 := time.Now()
	for i := 0; i < accelAfter+2; i++ {
		s.Step(t0.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	afterGap := s.Step(t0.Add(time.Second))
	if afterGap != minStep {
		t.Fatalf("expected a large gap to reset the step to minStep, got %d", afterGap)
	}
}
