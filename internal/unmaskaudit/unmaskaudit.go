// Package unmaskaudit replays a hand's entire unmasking history through
// one batched pairing check, falling back to per-entry checks only when
// the batch fails, to localize exactly which player forged an
// unmasking. Grounded on
// original_source/lib/crum_pkr/src/poker_hand_verify.rs.
package unmaskaudit

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/rs/zerolog"

	"crumble/internal/ocpcrypto"
)

// ErrUnmaskForgery is the sentinel every CheatError wraps, so callers
// can test for a forged unmasking with errors.Is without caring which
// player it was.
var ErrUnmaskForgery = errors.New("unmaskaudit: unmasking forged")

// CheatError names the player whose submitted unmasking does not match
// e(after, pk_player) · e(-before, G2_gen) = 1.
type CheatError struct {
	Player int
}

func (e *CheatError) Error() string {
	return fmt.Sprintf("unmaskaudit: player %d forged an unmasking", e.Player)
}

func (e *CheatError) Is(target error) bool {
	return target == ErrUnmaskForgery
}

// Entry is one step of the unmasking history: Actor removed their mask
// from Before, producing After.
type Entry struct {
	Before, After ocpcrypto.G1Point
	Actor         int
}

// Replay runs the two-phase audit: one batched PairingCheck across
// every entry (O(1) final exponentiation regardless of hand length),
// and only on failure a second pass checking entries one at a time to
// find the culprit. publicKeys is indexed by player; logger may be the
// zero value to disable logging.
func Replay(entries []Entry, publicKeys []ocpcrypto.G2Point, logger zerolog.Logger) error {
	if len(entries) == 0 {
		return nil
	}

	negG2Gen := ocpcrypto.G2Neg(ocpcrypto.G2Generator())

	g1Points := make([]bls12381.G1Affine, 0, len(entries)*2)
	g2Points := make([]bls12381.G2Affine, 0, len(entries)*2)
	for _, e := range entries {
		if e.Actor < 0 || e.Actor >= len(publicKeys) {
			return fmt.Errorf("unmaskaudit: entry actor %d out of range", e.Actor)
		}
		g1Points = append(g1Points, e.After.AsAffine(), e.Before.AsAffine())
		g2Points = append(g2Points, publicKeys[e.Actor].AsAffine(), negG2Gen.AsAffine())
	}

	ok, err := bls12381.PairingCheck(g1Points, g2Points)
	if err != nil {
		return fmt.Errorf("unmaskaudit: batched pairing check: %w", err)
	}
	if ok {
		logger.Debug().Int("entries", len(entries)).Msg("unmask audit passed in one batch")
		return nil
	}

	logger.Warn().Int("entries", len(entries)).Msg("unmask audit batch failed, localizing cheater")
	for i, e := range entries {
		if err := ocpcrypto.VerifyUnmasking(e.Before, e.After, publicKeys[e.Actor]); err != nil {
			logger.Error().Int("entry", i).Int("player", e.Actor).Msg("forged unmasking located")
			return &CheatError{Player: e.Actor}
		}
	}
	// The batch failed but no individual entry did: the encoding of the
	// batch itself (point order, table ranges) disagreed with the
	// per-entry equation, not any single player's submission.
	return fmt.Errorf("unmaskaudit: batch failed without a localizable culprit")
}
