//go:build !linux

package input

import (
	"time"

	"github.com/alejandroqh/term39/internal/gpm"
)

// GPMSource has no GPM to adapt outside Linux; NewGPMSource's caller
// (gpm.Open already fails on this platform) never reaches a working
// instance, but the type exists so cross-platform callers still compile.
type GPMSource struct{}

func NewGPMSource(_ *gpm.Client) *GPMSource { return &GPMSource{} }

func (gs *GPMSource) Poll(_ time.Duration) (Event, bool) { return Event{}, false }

func (gs *GPMSource) Stop() {}
