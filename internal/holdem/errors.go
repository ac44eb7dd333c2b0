package holdem

import "errors"

var (
	// ErrWrongPhase is returned when a submission is made outside the
	// phase it belongs to (e.g. submitting a bet during shuffle).
	ErrWrongPhase = errors.New("holdem: wrong phase for this submission")
	// ErrWrongTurn is returned when the submitting player is not the
	// one the current phase expects.
	ErrWrongTurn = errors.New("holdem: not your turn")
	// ErrLengthMismatch is returned when a submitted card slice does
	// not have exactly the length the phase requires.
	ErrLengthMismatch = errors.New("holdem: incorrect length of submitted cards")
	// ErrOutOfBounds is returned for a community-card round argument
	// outside 1..=3 (flop, turn, river).
	ErrOutOfBounds = errors.New("holdem: round out of bounds")
	// ErrMissingPublicKey is returned if a hand is replayed for
	// fairness before every player has submitted their public key.
	ErrMissingPublicKey = errors.New("holdem: missing public key for unmask audit")

	errHandFinished = errors.New("holdem: hand has already finished")
)
