package types

import (
	"errors"
	"fmt"
)

// Declined operations. These are the recoverable error class: the host or the
// core said no, and the caller decides what that means.
var (
	// ErrUnsupported is returned by default Core implementations for
	// operations the core does not provide (serialization, special loads).
	ErrUnsupported = errors.New("operation not supported by this core")

	// ErrLoadFailed is a convenient load_game failure when the core has no
	// more specific reason to give.
	ErrLoadFailed = errors.New("core failed to load game")
)

// ProtocolViolation is the fatal error class: the frontend called an entry
// point in a state where the call is contractually illegal, or a callback the
// call depends on was never installed. The bridge panics with one of these
// rather than limping on, because silent corruption across the ABI boundary
// is strictly worse than a crash with a diagnostic.
type ProtocolViolation struct {
	// Entry is the ABI entry point that was mis-called.
	Entry string
	// Reason states which precondition failed.
	Reason string
}

var _ error = (*ProtocolViolation)(nil)

func (p *ProtocolViolation) Error() string {
	return fmt.Sprintf("libretro protocol violation in %s: %s", p.Entry, p.Reason)
}
