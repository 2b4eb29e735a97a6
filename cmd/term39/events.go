package main

import (
	"os"

	"github.com/alejandroqh/term39/internal/gpm"
	"github.com/alejandroqh/term39/internal/input"
	"github.com/alejandroqh/term39/internal/render"
)

// eventSources bundles the merged input.EventSource this run uses plus
// whatever background readers need to be torn down on exit.
type eventSources struct {
	source input.EventSource
	stop   func()
}

// buildEventSources always reads keyboard (and, for the host backend, SGR
// mouse) bytes from stdin; when the active backend owns its own pointer
// device (the framebuffer) it also tries to open GPM and merges its
// reports in ahead of the host stream, matching the source priority order
// from the dispatch chain.
func buildEventSources(backend render.Backend) *eventSources {
	host := input.NewHostSource(os.Stdin, backend.ScaleMouseCoords)
	sources := []input.EventSource{host}
	stops := []func(){host.Stop}

	if backend.HasNativeMouseInput() {
		if client, err := gpm.OpenWithMask(0); err == nil {
			gs := input.NewGPMSource(client)
			sources = append([]input.EventSource{gs}, sources...)
			stops = append(stops, gs.Stop)
		}
	}

	var merged input.EventSource
	if len(sources) == 1 {
		merged = sources[0]
	} else {
		merged = &input.MultiSource{Sources: sources}
	}

	return &eventSources{
		source: merged,
		stop: func() {
			for _, s := range stops {
				s()
			}
		},
	}
}
