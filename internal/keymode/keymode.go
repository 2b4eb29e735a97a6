// Package keymode implements the Keyboard Mode State machine: Normal
// versus Window Mode (with Navigation/Move/Resize sub-modes), the
// adaptive-step accelerator used while nudging a window, and the
// double-backtick pass-through toggle.
package keymode

import "time"

// Mode identifies the top-level interaction mode.
type Mode int

const (
	Normal Mode = iota
	WindowMode
)

// SubMode identifies which Window Mode sub-state is active.
type SubMode int

const (
	Navigation SubMode = iota
	Move
	Resize
)

// backtickDoublePressWindow is how long a second backtick tap has to land
// to cancel the mode toggle and send a literal backtick instead.
const backtickDoublePressWindow = 300 * time.Millisecond

// minStep is the starting adaptive-move/resize step size; maxStep bounds
// how fast it accelerates.
const (
	minStep = 1
	maxStep = 8
	// accelAfter is how many consecutive nudges within the hold window it
	// takes to reach maxStep; the nudges' direction is not tracked.
	accelAfter = 6
	holdWindow = 150 * time.Millisecond
)

// State is the Keyboard Mode State machine.
type State struct {
	Mode Mode
	Sub  SubMode

	lastBacktick time.Time
	pendingTick  bool

	lastStepAt time.Time
	holdCount  int
}

// ToggleBacktick implements the double-backtick pass-through contract: a
// single tap toggles Window Mode on/off; a second tap within 300ms cancels
// the toggle (restoring the mode prior to the first tap) and reports that
// a literal backtick should be sent to the terminal instead.
func (s *State) ToggleBacktick(now time.Time) (sendLiteral bool) {
	if s.pendingTick && now.Sub(s.lastBacktick) < backtickDoublePressWindow {
		s.pendingTick = false
		// Second tap cancels: invert back to the mode the first tap started
		// from, i.e. invert again.
		s.toggleModeOnce()
		return true
	}
	s.toggleModeOnce()
	s.pendingTick = true
	s.lastBacktick = now
	return false
}

func (s *State) toggleModeOnce() {
	if s.Mode == Normal {
		s.Mode = WindowMode
		s.Sub = Navigation
	} else {
		s.Mode = Normal
	}
}

// EnterWindowMode is the F8 shortcut: Normal -> WindowMode(Navigation)
// directly, no double-tap semantics.
func (s *State) EnterWindowMode() {
	s.Mode = WindowMode
	s.Sub = Navigation
}

// ExitToNormal leaves Window Mode entirely, from any sub-mode.
func (s *State) ExitToNormal() {
	s.Mode = Normal
	s.Sub = Navigation
	s.holdCount = 0
}

// EnterMove switches Navigation -> Move ('m').
func (s *State) EnterMove() {
	if s.Mode == WindowMode {
		s.Sub = Move
		s.holdCount = 0
	}
}

// EnterResize switches Navigation -> Resize ('r'). The anchored edge isn't
// fixed at entry: each h/j/k/l keystroke in Resize reads its own Shift state
// to decide which edge it resizes from (see input.handleResize).
func (s *State) EnterResize() {
	if s.Mode == WindowMode {
		s.Sub = Resize
		s.holdCount = 0
	}
}

// ReturnToNavigation implements Enter|Esc|F8|m returning Move/Resize to
// Navigation.
func (s *State) ReturnToNavigation() {
	if s.Mode == WindowMode {
		s.Sub = Navigation
		s.holdCount = 0
	}
}

// Step reports the current adaptive step size for a move/resize nudge at
// time now, advancing the hold-acceleration counter. Consecutive calls
// within holdWindow of each other increase the step; a gap resets it.
func (s *State) Step(now time.Time) int {
	if !s.lastStepAt.IsZero() && now.Sub(s.lastStepAt) < holdWindow {
		s.holdCount++
	} else {
		s.holdCount = 0
	}
	s.lastStepAt = now

	step := minStep + (maxStep-minStep)*s.holdCount/accelAfter
	if step > maxStep {
		step = maxStep
	}
	return step
}

// ResetStep clears the hold-acceleration counter, e.g. on key release.
func (s *State) ResetStep() {
	s.holdCount = 0
	s.lastStepAt = time.Time{}
}
