// Package shuffleproof generates and verifies the permutation witness a
// player retains when they mask-then-shuffle a deck, so that at hand
// end anyone holding that player's public key can check the shuffle
// was a true permutation of what they received, without learning the
// permutation itself before then. Uses the same batched-pairing shape
// as original_source/lib/crum_pkr/src/poker_hand_verify.rs applies to
// unmask auditing.
package shuffleproof

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"crumble/internal/ocpcrypto"
	"crumble/internal/ocpshuffle"
)

var (
	// ErrClonedCard marks a trace that claims the same input index for
	// two different output positions  -  the input deck was not actually
	// permuted bijectively.
	ErrClonedCard = errors.New("shuffleproof: claimed_before_index used more than once")
	// ErrTraceOutOfBounds marks a trace entry referencing an index
	// outside either deck.
	ErrTraceOutOfBounds = errors.New("shuffleproof: trace entry out of bounds")
	// ErrShuffleForgery is returned when the batched pairing check (and,
	// on fallback, every per-entry check) disagrees with the trace.
	ErrShuffleForgery = errors.New("shuffleproof: shuffle does not match claimed trace")
)

// Entry records that the output deck's point at AfterIndex came from
// the input deck's point at BeforeIndex, after masking by the acting
// player's key.
type Entry struct {
	AfterIndex        int
	ClaimedBeforeIndex int
}

// Trace is the full permutation witness a player retains privately
// until hand end.
type Trace struct {
	Entries []Entry
}

// Record builds a Trace from the permutation actually applied: perm[i]
// is the input index the output position i was filled from (the same
// convention rand.Shuffle's swap history produces once replayed).
func Record(perm []int) Trace {
	entries := make([]Entry, len(perm))
	for after, before := range perm {
		entries[after] = Entry{AfterIndex: after, ClaimedBeforeIndex: before}
	}
	return Trace{Entries: entries}
}

// MarshalBinary implements encoding.BinaryMarshaler: a uint16 entry
// count followed by (AfterIndex, ClaimedBeforeIndex) uint16 pairs.
func (t Trace) MarshalBinary() ([]byte, error) {
	if len(t.Entries) > 0xffff {
		return nil, fmt.Errorf("shuffleproof: too many entries to encode: %d", len(t.Entries))
	}
	var w ocpshuffle.Writer
	w.PutUint16(uint16(len(t.Entries)))
	for _, e := range t.Entries {
		w.PutUint16(uint16(e.AfterIndex))
		w.PutUint16(uint16(e.ClaimedBeforeIndex))
	}
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Trace) UnmarshalBinary(b []byte) error {
	r := ocpshuffle.NewReader(b)
	count, err := r.Uint16()
	if err != nil {
		return fmt.Errorf("shuffleproof: decode trace: %w", err)
	}
	entries := make([]Entry, count)
	for i := range entries {
		after, err := r.Uint16()
		if err != nil {
			return fmt.Errorf("shuffleproof: decode trace: %w", err)
		}
		before, err := r.Uint16()
		if err != nil {
			return fmt.Errorf("shuffleproof: decode trace: %w", err)
		}
		entries[i] = Entry{AfterIndex: int(after), ClaimedBeforeIndex: int(before)}
	}
	if !r.Done() {
		return fmt.Errorf("shuffleproof: decode trace: trailing bytes")
	}
	t.Entries = entries
	return nil
}

// Verify checks a player's shuffle of `before` into `after` under
// public key `pk` against the retained `trace`, batching every entry's
// pairing operands into a single PairingCheck and only falling back to
// per-entry checks (to localize which entry is false) if the batch
// fails.
func Verify(before, after []ocpcrypto.G1Point, pk ocpcrypto.G2Point, trace Trace) error {
	if len(before) < len(after) {
		return fmt.Errorf("%w: %d before points, %d after points", ErrTraceOutOfBounds, len(before), len(after))
	}
	if len(trace.Entries) != len(after) {
		return fmt.Errorf("%w: trace has %d entries, after has %d points", ErrTraceOutOfBounds, len(trace.Entries), len(after))
	}

	seen := make(map[int]bool, len(trace.Entries))
	for _, e := range trace.Entries {
		if e.AfterIndex < 0 || e.AfterIndex >= len(after) {
			return fmt.Errorf("%w: after index %d", ErrTraceOutOfBounds, e.AfterIndex)
		}
		if e.ClaimedBeforeIndex < 0 || e.ClaimedBeforeIndex >= len(before) {
			return fmt.Errorf("%w: before index %d", ErrTraceOutOfBounds, e.ClaimedBeforeIndex)
		}
		if seen[e.ClaimedBeforeIndex] {
			return fmt.Errorf("%w: index %d", ErrClonedCard, e.ClaimedBeforeIndex)
		}
		seen[e.ClaimedBeforeIndex] = true
	}

	negG2Gen := ocpcrypto.G2Neg(ocpcrypto.G2Generator())

	g1Points := make([]bls12381.G1Affine, 0, len(trace.Entries)*2)
	g2Points := make([]bls12381.G2Affine, 0, len(trace.Entries)*2)
	for _, e := range trace.Entries {
		g1Points = append(g1Points, after[e.AfterIndex].AsAffine(), before[e.ClaimedBeforeIndex].AsAffine())
		g2Points = append(g2Points, negG2Gen.AsAffine(), pk.AsAffine())
	}

	ok, err := bls12381.PairingCheck(g1Points, g2Points)
	if err != nil {
		return fmt.Errorf("shuffleproof: batched pairing check: %w", err)
	}
	if ok {
		return nil
	}

	for _, e := range trace.Entries {
		if err := ocpcrypto.VerifyMasking(before[e.ClaimedBeforeIndex], after[e.AfterIndex], pk); err != nil {
			return fmt.Errorf("%w: entry (after=%d, before=%d)", ErrShuffleForgery, e.AfterIndex, e.ClaimedBeforeIndex)
		}
	}
	return fmt.Errorf("shuffleproof: batch failed without a localizable entry")
}
