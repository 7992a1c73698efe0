// Package lock implements the terminal's security check.
//
// A Lock starts LOCKED and accepts a bounded number of code submissions.
// A matching code moves it to GRANTED; exhausting the attempt budget moves
// it to DENIED. Both outcomes are terminal.
package lock

import (
	"context"
	"log"
	"strings"

	"github.com/looplab/fsm"
)

// Lock states.
const (
	StateLocked  = "locked"
	StateGranted = "granted"
	StateDenied  = "denied"
)

const (
	eventGrant = "grant"
	eventDeny  = "deny"
)

// Result is the outcome of a single submission.
type Result int

const (
	// ResultIgnored means the lock is no longer accepting input.
	ResultIgnored Result = iota
	// ResultGranted means the code matched.
	ResultGranted
	// ResultInvalid means the code was wrong and attempts remain.
	ResultInvalid
	// ResultDenied means the code was wrong and the budget is exhausted.
	ResultDenied
)

// String returns the string representation of the result
func (r Result) String() string {
	switch r {
	case ResultGranted:
		return "Granted"
	case ResultInvalid:
		return "Invalid"
	case ResultDenied:
		return "Denied"
	default:
		return "Ignored"
	}
}

// Config holds the accepted secrets and the attempt budget.
type Config struct {
	Code       string
	Passphrase string
	Attempts   int
}

// Lock is the security-check state machine.
type Lock struct {
	fsm          *fsm.FSM
	code         string
	passphrase   string
	attemptsLeft int
}

// New creates a locked Lock. A non-positive attempt budget is treated as 1.
func New(cfg Config) *Lock {
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}
	return &Lock{
		fsm: fsm.NewFSM(
			StateLocked,
			fsm.Events{
				{Name: eventGrant, Src: []string{StateLocked}, Dst: StateGranted},
				{Name: eventDeny, Src: []string{StateLocked}, Dst: StateDenied},
			},
			fsm.Callbacks{},
		),
		code:         normalize(cfg.Code),
		passphrase:   normalize(cfg.Passphrase),
		attemptsLeft: attempts,
	}
}

// Submit checks a code or passphrase.
// Comparison ignores case and surrounding whitespace.
func (l *Lock) Submit(input string) Result {
	if !l.fsm.Is(StateLocked) {
		return ResultIgnored
	}

	txt := normalize(input)
	if txt != "" && (txt == l.code || txt == l.passphrase) {
		l.fire(eventGrant)
		return ResultGranted
	}

	l.attemptsLeft--
	if l.attemptsLeft <= 0 {
		l.attemptsLeft = 0
		l.fire(eventDeny)
		return ResultDenied
	}
	return ResultInvalid
}

func (l *Lock) fire(name string) {
	if err := l.fsm.Event(context.Background(), name); err != nil {
		log.Printf("[lock] %s: %v", name, err)
	}
}

// AttemptsLeft returns the remaining submissions before denial.
func (l *Lock) AttemptsLeft() int {
	return l.attemptsLeft
}

// State returns the current state name.
func (l *Lock) State() string {
	return l.fsm.Current()
}

// Granted reports whether a correct code has been entered.
func (l *Lock) Granted() bool {
	return l.fsm.Is(StateGranted)
}

// Denied reports whether the attempt budget is exhausted.
func (l *Lock) Denied() bool {
	return l.fsm.Is(StateDenied)
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
