package unmaskaudit

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"crumble/internal/ocpcrypto"
)

func zeroLogger() zerolog.Logger {
	return zerolog.Nop()
}

func makeEntry(t *testing.T, sk ocpcrypto.Scalar) (Entry, ocpcrypto.G2Point) {
	t.Helper()
	card, err := ocpcrypto.HashToCurve([]byte("Ah"))
	if err != nil {
		t.Fatalf("hash to curve: %v", err)
	}
	before := ocpcrypto.Mask(card, sk)
	after, err := ocpcrypto.Unmask(before, sk)
	if err != nil {
		t.Fatalf("unmask: %v", err)
	}
	pk := ocpcrypto.MulG2(ocpcrypto.G2Generator(), sk)
	return Entry{Before: before, After: after, Actor: 0}, pk
}

func TestReplay_AcceptsHonestHistory(t *testing.T) {
	sk, err := ocpcrypto.ScalarRandom()
	if err != nil {
		t.Fatalf("scalar random: %v", err)
	}
	entry, pk := makeEntry(t, sk)

	if err := Replay([]Entry{entry}, []ocpcrypto.G2Point{pk}, zeroLogger()); err != nil {
		t.Fatalf("Replay on honest history: %v", err)
	}
}

func TestReplay_RejectsAndLocalizesForgery(t *testing.T) {
	sk, err := ocpcrypto.ScalarRandom()
	if err != nil {
		t.Fatalf("scalar random: %v", err)
	}
	entry, pk := makeEntry(t, sk)
	// Forge the "after" point so it no longer matches the claimed
	// unmasking of "before" by this player's key.
	forged := ocpcrypto.G1Generator()
	entry.After = forged

	err = Replay([]Entry{entry}, []ocpcrypto.G2Point{pk}, zeroLogger())
	if err == nil {
		t.Fatalf("Replay on forged history should fail")
	}
	if !errors.Is(err, ErrUnmaskForgery) {
		t.Fatalf("got %v, want ErrUnmaskForgery", err)
	}
	var cheatErr *CheatError
	if !errors.As(err, &cheatErr) {
		t.Fatalf("got %v, want *CheatError", err)
	}
	if cheatErr.Player != 0 {
		t.Fatalf("got player %d, want 0", cheatErr.Player)
	}
}

func TestReplay_EmptyHistoryIsFair(t *testing.T) {
	if err := Replay(nil, nil, zeroLogger()); err != nil {
		t.Fatalf("Replay on empty history: %v", err)
	}
}
