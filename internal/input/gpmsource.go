//go:build linux

package input

import (
	"time"

	"github.com/alejandroqh/term39/internal/gpm"
)

// GPMSource adapts a gpm.Client into an EventSource, converting its
// reports into the pipeline's MouseEvent representation with
// IsInjected=true (GPM coordinates are already in character cells, so
// they bypass scale_mouse_coords).
type GPMSource struct {
	client *gpm.Client
	events chan Event
	stop   chan struct{}
}

// NewGPMSource starts a goroutine blocking on client.GetEvent.
func NewGPMSource(client *gpm.Client) *GPMSource {
	gs := &GPMSource{client: client, events: make(chan Event, 64), stop: make(chan struct{})}
	go gs.readLoop()
	return gs
}

func (gs *GPMSource) readLoop() {
	for {
		select {
		case <-gs.stop:
			return
		default:
		}
		ev, ok := gs.client.GetEvent()
		if !ok {
			continue
		}
		me := MouseEvent{
			Col:        ev.X,
			Row:        ev.Y,
			Source:     SourceGPM,
			IsInjected: true,
		}
		switch {
		case ev.Type&gpm.EventDown != 0:
			me.Kind = MouseDown
		case ev.Type&gpm.EventUp != 0:
			me.Kind = MouseUp
		default:
			me.Kind = MouseMove
		}
		switch {
		case ev.Buttons&gpm.ButtonLeft != 0:
			me.Button = ButtonLeft
		case ev.Buttons&gpm.ButtonRight != 0:
			me.Button = ButtonRight
		case ev.Buttons&gpm.ButtonMiddle != 0:
			me.Button = ButtonMiddle
		}
		select {
		case gs.events <- Event{Mouse: &me}:
		case <-gs.stop:
			return
		}
	}
}

func (gs *GPMSource) Poll(timeout time.Duration) (Event, bool) {
	if timeout <= 0 {
		select {
		case ev := <-gs.events:
			return ev, true
		default:
			return Event{}, false
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case ev := <-gs.events:
		return ev, true
	case <-t.C:
		return Event{}, false
	}
}

// Stop terminates the reader goroutine and closes the GPM connection.
func (gs *GPMSource) Stop() {
	close(gs.stop)
	gs.client.Close()
}
