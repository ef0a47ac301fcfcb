package core

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// RunContext carries the one piece of shared mutable state in the
// program: the cancellation flag. The flag is set at most once, from the
// signal-handler goroutine, and read between frame writes by the
// pipeline and between files by the batch driver. A fresh RunContext is
// required for a new run; the flag is never reset.
type RunContext struct {
	cancelled atomic.Bool
}

// NewRunContext returns a context with the cancellation flag clear.
func NewRunContext() *RunContext {
	return &RunContext{}
}

// Cancel sets the cancellation flag. Safe to call from any goroutine.
func (rc *RunContext) Cancel() {
	rc.cancelled.Store(true)
}

// Cancelled reports whether an abort has been requested.
func (rc *RunContext) Cancelled() bool {
	return rc.cancelled.Load()
}

// InstallInterruptHandler arranges for SIGINT/SIGTERM to set the
// cancellation flag. The first signal cancels cooperatively; handling is
// then restored so a second signal kills the process outright.
func (rc *RunContext) InstallInterruptHandler() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		rc.Cancel()
		signal.Stop(ch)
	}()
}
