// Package harvest implements the day counter used by the count-harvest exercises.
// A Session counts from zero up to a target one day at a time, reporting each day
// and a final completion signal.
package harvest

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNegativeTarget is returned by Start when the target is below zero
	// and the negative policy is PolicyReject.
	ErrNegativeTarget = errors.New("days until harvest cannot be negative")
	// ErrInvalidTarget wraps input that could not be read as a day count.
	ErrInvalidTarget = errors.New("invalid day count")
)

// State is the lifecycle position of a Session.
type State uint8

const (
	Uninitialized State = iota
	Counting
	Done
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Counting:
		return "Counting"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// EventKind distinguishes progress from completion.
type EventKind uint8

const (
	EventProgress EventKind = iota + 1
	EventComplete
)

// Event is produced by a single Step.
type Event struct {
	Kind EventKind
	Day  int
}

// Session holds the state of one counting session.
// The zero value is Uninitialized; use Start to begin counting.
type Session struct {
	target  int
	elapsed int
	state   State
}

// Start begins a session for target days. elapsed is reset to zero.
func Start(target int, opts ...Option) (*Session, error) {
	o := newOptions(opts)

	switch {
	case target < 0 && o.negative == PolicyComplete:
		// Completes immediately whatever the zero-day policy says.
		target = 0
	case target < 0:
		return nil, fmt.Errorf("%w: %d", ErrNegativeTarget, target)
	case target == 0 && o.zeroDay == ZeroDayForced:
		target = 1
	}

	return &Session{target: target, state: Counting}, nil
}

// StartFrom acquires the target from src and starts a session with it.
func StartFrom(ctx context.Context, src TargetSource, opts ...Option) (*Session, error) {
	target, err := src.Target(ctx)
	if err != nil {
		return nil, err
	}
	return Start(target, opts...)
}

// Step performs one state transition. The boolean is false once the session
// is Done (or was never started) and no event was produced.
func (s *Session) Step() (Event, bool) {
	if s.state != Counting {
		return Event{}, false
	}
	if s.elapsed == s.target {
		s.state = Done
		return Event{Kind: EventComplete, Day: s.elapsed}, true
	}
	s.elapsed++
	return Event{Kind: EventProgress, Day: s.elapsed}, true
}

// Run steps the session until it is Done, passing every event to r.
// Cancellation is checked between steps.
func (s *Session) Run(ctx context.Context, r Reporter) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, ok := s.Step()
		if !ok {
			return nil
		}
		switch ev.Kind {
		case EventProgress:
			r.Progress(ev.Day)
		case EventComplete:
			r.Complete()
		}
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Elapsed returns the number of days counted so far.
func (s *Session) Elapsed() int { return s.elapsed }

// Target returns the effective target, after policies were applied.
func (s *Session) Target() int { return s.target }

// Count starts a session for target and runs it to completion.
func Count(ctx context.Context, target int, r Reporter, opts ...Option) error {
	s, err := Start(target, opts...)
	if err != nil {
		return err
	}
	return s.Run(ctx, r)
}
