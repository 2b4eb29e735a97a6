//go:build windows

package input

// ExternalLock is a no-op on Windows: there is no SIGUSR1 equivalent
// wired up, so the external-lock-request dispatch step is always false.
type ExternalLock struct{}

func NewExternalLock() *ExternalLock { return &ExternalLock{} }

func (el *ExternalLock) Poll() bool { return false }
func (el *ExternalLock) Reset()     {}
func (el *ExternalLock) Stop()      {}
