package game

import "errors"

var (
	// ErrInsufficientFunds is returned when a round cannot start because the
	// balance is below MinBet. The engine is in GameOver afterwards.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidState is returned when an action does not fit the current
	// phase. Nothing changes; callers treat it as a no-op.
	ErrInvalidState = errors.New("action not allowed in current phase")
)
