package game

import "errors"

// Engine errors. All are synchronous precondition failures surfaced to the
// caller; the engine never retries or silently corrects. Callers match them
// with errors.Is since most are returned wrapped with context.
var (
	// ErrInvalidTransition is returned for any phase change outside the
	// allowed lifecycle graph, including operations called in the wrong
	// phase.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInsufficientPlayers is returned when a hand needs at least two
	// active players and has fewer.
	ErrInsufficientPlayers = errors.New("insufficient players")

	// ErrPlayerNotFound is returned when a player name is unknown to the
	// table.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidPosition is returned for out-of-range or occupied seats and
	// for actions taken out of turn.
	ErrInvalidPosition = errors.New("invalid seat or position")

	// ErrInvalidContribution is returned by the pot ledger for non-positive
	// contribution amounts.
	ErrInvalidContribution = errors.New("invalid contribution")

	// ErrInvalidAction is returned when an action is illegal in the current
	// betting state, such as checking while facing a bet.
	ErrInvalidAction = errors.New("invalid action")

	// ErrTooFewCards is returned when a showdown participant holds fewer
	// than five combined hole and community cards and cannot be ranked.
	// A sole remaining player never hits this; they win by default.
	ErrTooFewCards = errors.New("insufficient cards to evaluate")
)
