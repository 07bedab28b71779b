package gate

import "errors"

// Sentinel errors for every way a gate operation can be rejected. A rejected
// operation leaves no partial state behind.
var (
	// ErrUnauthorized is returned when the caller lacks the role an
	// operation requires.
	ErrUnauthorized = errors.New("caller lacks required role")

	// ErrPaused is returned by Mint while the gate is paused, and by
	// Pause when the gate is already paused.
	ErrPaused = errors.New("minting is paused")

	// ErrNotPaused is returned by Unpause when the gate is active.
	ErrNotPaused = errors.New("minting is not paused")

	// ErrInsufficientStake is returned when the caller's computed vault
	// stake is below the configured threshold.
	ErrInsufficientStake = errors.New("staked balance below required amount")
)
