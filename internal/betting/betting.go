// Package betting tracks chip stacks, the pot, and per-street bets for
// a hand, deciding fold/check/call/raise purely from the amount of
// chips a player puts in. Grounded on
// original_source/lib/crum_pkr/src/poker_bets.rs.
package betting

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyFolded is returned for any action by a player no longer
	// active in the hand.
	ErrAlreadyFolded = errors.New("betting: player has already folded")
	// ErrUnderCall is returned when a nonzero amount is less than the
	// amount required to call.
	ErrUnderCall = errors.New("betting: amount is less than the required call amount")
	// ErrInsufficientChips is returned when a player's stack cannot
	// cover the amount they are attempting to put in.
	ErrInsufficientChips = errors.New("betting: not enough chips in stack")
)

// State is the betting ledger for one hand: chip stacks, the pot, and
// each active player's commitment on the current street.
//
// A player whose stack cannot cover the call amount may still put in
// exactly what remains of their stack as a permitted all-in (spec
// §4.7's carried-forward TODO); the ledger does not track separate
// side pots, so an all-in player simply contests the whole pot as it
// stands, a known simplification left to a follow-up spec.
type State struct {
	chips      []uint64
	streetBets []*uint64
	pot        uint64
	active     []bool
	highestBet uint64
}

// New builds a betting ledger for numPlayers players, each starting
// with initialChips.
func New(numPlayers int, initialChips uint64) *State {
	s := &State{
		chips:      make([]uint64, numPlayers),
		streetBets: make([]*uint64, numPlayers),
		active:     make([]bool, numPlayers),
	}
	for i := range s.chips {
		s.chips[i] = initialChips
		s.active[i] = true
	}
	return s
}

// ChipsRemaining reports a player's current stack.
func (s *State) ChipsRemaining(player int) uint64 {
	return s.chips[player]
}

// Pot reports the total chips committed so far this hand.
func (s *State) Pot() uint64 {
	return s.pot
}

// Active reports which players have not folded.
func (s *State) Active() []bool {
	out := make([]bool, len(s.active))
	copy(out, s.active)
	return out
}

// IsFolded reports whether a player has folded.
func (s *State) IsFolded(player int) bool {
	return !s.active[player]
}

// CallAmountRequired returns the amount a still-active player must put
// in to match the current highest bet.
func (s *State) CallAmountRequired(player int) (uint64, error) {
	if !s.active[player] {
		return 0, fmt.Errorf("%w: player %d", ErrAlreadyFolded, player)
	}
	return s.highestBet - s.streetBetOf(player), nil
}

func (s *State) streetBetOf(player int) uint64 {
	if s.streetBets[player] == nil {
		return 0
	}
	return *s.streetBets[player]
}

// ProcessAction applies a player's action, expressed purely as the
// number of chips they put in: amount == 0 is a Check (if nothing is
// owed) or a Fold (if something is owed); amount > 0 is a Call or,
// if it exceeds the required call, a Raise that becomes the new
// highest bet. A player whose entire remaining stack is still short of
// the call amount may put in exactly that stack as an all-in, rather
// than being forced to fold.
func (s *State) ProcessAction(player int, amount uint64) error {
	if !s.active[player] {
		return fmt.Errorf("%w: player %d", ErrAlreadyFolded, player)
	}

	needed := s.highestBet - s.streetBetOf(player)

	if amount == 0 {
		if needed > 0 {
			s.active[player] = false
			return nil
		}
		zero := uint64(0)
		s.streetBets[player] = &zero
		return nil
	}

	allIn := amount == s.chips[player]
	if amount < needed && !allIn {
		return fmt.Errorf("%w: player %d owes %d, put in %d", ErrUnderCall, player, needed, amount)
	}
	if amount > s.chips[player] {
		return fmt.Errorf("%w: player %d has %d, tried to put in %d", ErrInsufficientChips, player, s.chips[player], amount)
	}

	s.chips[player] -= amount
	newBet := s.streetBetOf(player) + amount
	s.streetBets[player] = &newBet
	s.pot += amount

	if amount > needed {
		s.highestBet = newBet
	}
	return nil
}

// IsAllIn reports whether a player has committed their entire stack,
// and so cannot be asked to put in more chips on a later street.
func (s *State) IsAllIn(player int) bool {
	return s.active[player] && s.chips[player] == 0
}

// IsBettingRoundComplete reports whether every active player who is not
// all-in has matched the highest bet (or at most one player remains).
func (s *State) IsBettingRoundComplete() bool {
	activeCount := 0
	for _, a := range s.active {
		if a {
			activeCount++
		}
	}
	if activeCount <= 1 {
		return true
	}
	for player, isActive := range s.active {
		if !isActive {
			continue
		}
		if s.IsAllIn(player) {
			continue
		}
		if s.streetBets[player] == nil {
			return false
		}
		if *s.streetBets[player] < s.highestBet {
			return false
		}
	}
	return true
}

// NextStreet resets per-street bet tracking ahead of the flop, turn,
// or river.
func (s *State) NextStreet() {
	for i := range s.streetBets {
		s.streetBets[i] = nil
	}
	s.highestBet = 0
}
