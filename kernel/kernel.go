// Package kernel defines the narrow contract nbcover has with a notebook
// execution engine.
//
// It provides a [Kernel] interface that drivers for concrete engines
// implement, and an [Awaiter] helper for drivers whose protocol exposes
// execution state as something to poll.
package kernel

import (
	"errors"
	"time"
)

//go:generate mockgen -destination kerneltest/mock.go -package kerneltest github.com/nbgo/nbcover/kernel Kernel

// ErrIdleTimeout is reported when a kernel does not reach the idle state
// within the allotted time.
var ErrIdleTimeout = errors.New("timed out waiting for kernel to become idle")

// Kernel is a channel to a running notebook execution engine. This core
// only ever submits source snippets and waits for them to finish; spawning
// and tearing down the engine is someone else's job.
type Kernel interface {
	// Language identifies the language family of code this kernel
	// executes, e.g. "go" or "python3".
	Language() string

	// Execute submits a source snippet for execution and returns an
	// opaque identifier for the request.
	Execute(code string) (msgID string, err error)

	// AwaitIdle blocks until the given request's execution reaches the
	// idle state, or the timeout elapses. Reports ErrIdleTimeout in the
	// latter case.
	AwaitIdle(msgID string, timeout time.Duration) error
}

// Status is the execution state of a submitted request.
type Status int

// Execution states reported by a StatusProber.
const (
	StatusBusy Status = iota
	StatusIdle
)

// StatusProber is the polling half of a kernel driver: it answers what state
// a previously submitted request is in right now.
type StatusProber interface {
	Status(msgID string) (Status, error)
}
