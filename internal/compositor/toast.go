// Package compositor implements the Compositor / Frame Loop: per-frame
// orchestration (resize check, render order, cursor restore, present),
// a small toast/notification queue, and leveled logging wired to
// internal/term39log.
package compositor

import "time"

// Toast is a transient notification surfaced by a global shortcut that
// has nothing else to do (spec.md §4.8 step 3) or any other recoverable
// condition worth telling the user about.
type Toast struct {
	Message string
	ShownAt time.Time
}

// ToastQueue holds at most one visible toast at a time; enqueuing while
// one is showing replaces it, matching a DOS-era single-line status
// message rather than a stacking notification center.
type ToastQueue struct {
	current *Toast
}

// Show replaces the current toast (if any) with message, stamped now.
func (q *ToastQueue) Show(message string, now time.Time) {
	q.current = &Toast{Message: message, ShownAt: now}
}

// Active reports whether a toast is currently showing.
func (q *ToastQueue) Active() bool { return q.current != nil }

// Current returns the active toast's message, or "" if none.
func (q *ToastQueue) Current() string {
	if q.current == nil {
		return ""
	}
	return q.current.Message
}

// Age reports how long the current toast has been showing; 0 if none.
func (q *ToastQueue) Age(now time.Time) time.Duration {
	if q.current == nil {
		return 0
	}
	return now.Sub(q.current.ShownAt)
}

// Dismiss clears the current toast.
func (q *ToastQueue) Dismiss() { q.current = nil }

// DismissIfOlderThan clears the active toast once it has been showing for
// longer than threshold. It looks only at the toast's age; whether a key
// has been pressed plays no part.
func (q *ToastQueue) DismissIfOlderThan(threshold time.Duration, now time.Time) {
	if q.Active() && q.Age(now) > threshold {
		q.Dismiss()
	}
}
