package input

import "testing"

type fakeKeyHandler struct {
	calls   int
	consume bool
}

func (f *fakeKeyHandler) HandleKey(ev KeyEvent) bool {
	f.calls++
	return f.consume
}

type fakeModal struct {
	fakeKeyHandler
	active bool
}

func (f *fakeModal) Active() bool { return f.active }

func TestLockScreenShortCircuitsEverything(t *testing.T) {
	lock := &fakeKeyHandler{consume: true}
	global := &fakeKeyHandler{consume: true}
	c := &Chain{LockScreen: lock, GlobalShortcuts: global}

	if !c.DispatchKey(KeyEvent{Rune: 'a'}) {
		t.Fatal("expected lock screen to consume the event")
	}
	if global.calls != 0 {
		t.Fatal("global shortcuts must not run once the lock screen consumes the event")
	}
}

func TestInactiveModalIsSkippedWithoutCallingHandleKey(t *testing.T) {
	m := &fakeModal{active: false}
	c := &Chain{Modals: []Modal{m}}
	c.DispatchKey(KeyEvent{Rune: 'a'})
	if m.calls != 0 {
		t.Fatal("an inactive modal must not be invoked")
	}
}

func TestActiveModalConsumesBeforeForwarding(t *testing.T) {
	m := &fakeModal{active: true, fakeKeyHandler: fakeKeyHandler{consume: true}}
	c := &Chain{Modals: []Modal{m}}
	if !c.DispatchKey(KeyEvent{Rune: 'a'}) {
		t.Fatal("expected the active modal to consume the event")
	}
	if m.calls != 1 {
		t.Fatalf("expected exactly one call to the active modal, got %d", m.calls)
	}
}

func TestGloballyInterceptedKeyNeverForwardsWithoutFocusedWindow(t *testing.T) {
	c := &Chain{}
	handled := c.forward(KeyEvent{Key: KeyF1})
	if !handled {
		t.Fatal("expected a globally intercepted key to report handled even with no WM")
	}
}
