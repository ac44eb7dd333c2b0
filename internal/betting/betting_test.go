package betting

import (
	"errors"
	"testing"
)

func TestProcessAction_CheckWhenNothingOwed(t *testing.T) {
	s := New(2, 1000)
	if err := s.ProcessAction(0, 0); err != nil {
		t.Fatalf("check: %v", err)
	}
	if s.ChipsRemaining(0) != 1000 {
		t.Fatalf("got %d chips, want 1000 unchanged", s.ChipsRemaining(0))
	}
	if s.IsFolded(0) {
		t.Fatalf("a check must not fold the player")
	}
}

func TestProcessAction_FoldWhenAmountOwedButZeroPutIn(t *testing.T) {
	s := New(2, 1000)
	if err := s.ProcessAction(0, 10); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if err := s.ProcessAction(1, 0); err != nil {
		t.Fatalf("fold: %v", err)
	}
	if !s.IsFolded(1) {
		t.Fatalf("player facing a bet who puts in 0 must fold")
	}
}

func TestProcessAction_CallMatchesHighestBet(t *testing.T) {
	s := New(2, 1000)
	if err := s.ProcessAction(0, 20); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if err := s.ProcessAction(1, 20); err != nil {
		t.Fatalf("call: %v", err)
	}
	if s.Pot() != 40 {
		t.Fatalf("got pot %d, want 40", s.Pot())
	}
	if !s.IsBettingRoundComplete() {
		t.Fatalf("round should be complete once everyone has matched")
	}
}

func TestProcessAction_RaiseBecomesNewHighestBet(t *testing.T) {
	s := New(3, 1000)
	if err := s.ProcessAction(0, 10); err != nil {
		t.Fatalf("bet: %v", err)
	}
	if err := s.ProcessAction(1, 30); err != nil {
		t.Fatalf("raise: %v", err)
	}
	need, err := s.CallAmountRequired(2)
	if err != nil {
		t.Fatalf("call amount required: %v", err)
	}
	if need != 30 {
		t.Fatalf("got call amount %d, want 30", need)
	}
}

func TestProcessAction_RejectsUnderCall(t *testing.T) {
	s := New(2, 1000)
	if err := s.ProcessAction(0, 50); err != nil {
		t.Fatalf("bet: %v", err)
	}
	if err := s.ProcessAction(1, 10); !errors.Is(err, ErrUnderCall) {
		t.Fatalf("got %v, want ErrUnderCall", err)
	}
}

func TestProcessAction_RejectsInsufficientChips(t *testing.T) {
	s := New(2, 100)
	if err := s.ProcessAction(0, 500); !errors.Is(err, ErrInsufficientChips) {
		t.Fatalf("got %v, want ErrInsufficientChips", err)
	}
}

func TestProcessAction_RejectsActionFromFoldedPlayer(t *testing.T) {
	s := New(2, 1000)
	if err := s.ProcessAction(0, 10); err != nil {
		t.Fatalf("bet: %v", err)
	}
	if err := s.ProcessAction(1, 0); err != nil {
		t.Fatalf("fold: %v", err)
	}
	if err := s.ProcessAction(1, 10); !errors.Is(err, ErrAlreadyFolded) {
		t.Fatalf("got %v, want ErrAlreadyFolded", err)
	}
}

func TestIsBettingRoundComplete_OneActivePlayerIsComplete(t *testing.T) {
	s := New(3, 1000)
	if err := s.ProcessAction(0, 10); err != nil {
		t.Fatalf("bet: %v", err)
	}
	if err := s.ProcessAction(1, 0); err != nil {
		t.Fatalf("fold: %v", err)
	}
	if err := s.ProcessAction(2, 0); err != nil {
		t.Fatalf("fold: %v", err)
	}
	if !s.IsBettingRoundComplete() {
		t.Fatalf("round must be complete once only one player remains")
	}
}

func TestNextStreet_ResetsBetsAndHighest(t *testing.T) {
	s := New(2, 1000)
	if err := s.ProcessAction(0, 20); err != nil {
		t.Fatalf("bet: %v", err)
	}
	if err := s.ProcessAction(1, 20); err != nil {
		t.Fatalf("call: %v", err)
	}
	s.NextStreet()
	need, err := s.CallAmountRequired(0)
	if err != nil {
		t.Fatalf("call amount required: %v", err)
	}
	if need != 0 {
		t.Fatalf("got call amount %d after next street, want 0", need)
	}
}

func TestProcessAction_AllInShortOfCallIsPermitted(t *testing.T) {
	s := New(2, 1000)
	s.chips[1] = 50 // player 1 is short-stacked
	if err := s.ProcessAction(0, 200); err != nil {
		t.Fatalf("bet: %v", err)
	}
	if err := s.ProcessAction(1, 50); err != nil {
		t.Fatalf("all-in call short of the bet should be permitted: %v", err)
	}
	if s.ChipsRemaining(1) != 0 {
		t.Fatalf("got %d chips remaining, want 0 after shoving the whole stack", s.ChipsRemaining(1))
	}
	if !s.IsAllIn(1) {
		t.Fatalf("player who shoved their whole stack should be reported all-in")
	}
	if !s.IsBettingRoundComplete() {
		t.Fatalf("round should be complete once the only other active player is all-in")
	}
	if s.Pot() != 250 {
		t.Fatalf("got pot %d, want 250", s.Pot())
	}
}

func TestProcessAction_NonAllInAmountShortOfCallIsUnderCall(t *testing.T) {
	s := New(2, 1000)
	if err := s.ProcessAction(0, 100); err != nil {
		t.Fatalf("bet: %v", err)
	}
	if err := s.ProcessAction(1, 40); !errors.Is(err, ErrUnderCall) {
		t.Fatalf("got %v, want ErrUnderCall for a non-all-in amount below the call", err)
	}
}
