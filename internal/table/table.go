// Package table is the thin roster/lifecycle wrapper around internal/holdem:
// it tracks which players have joined, refuses to start a new hand while
// the current one is unfinished, and hands out the active *holdem.Hand
// for gameplay. Grounded on
// original_source/lib/crum_pkr/src/poker_table.rs.
package table

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"crumble/internal/holdem"
)

var (
	// ErrTableFull is returned by Join once the roster has reached
	// MaxPlayers.
	ErrTableFull = errors.New("table: full")
	// ErrHandInProgress is returned by StartHand while the current hand
	// has not reached PhaseFinished or PhaseCheated.
	ErrHandInProgress = errors.New("table: hand in progress")
	// ErrPlayerIndexOutOfBounds is returned by Player for an index past
	// the current roster.
	ErrPlayerIndexOutOfBounds = errors.New("table: player index out of bounds")
)

// Table is a persistent seat roster a sequence of independent hands is
// played against. It carries no chip state of its own  -  every hand
// starts its players at initialChips, exactly as the reference table
// does (no carry-over bankroll across hands).
type Table struct {
	maxPlayers   int
	maxRounds    int
	players      []uint32
	dealerButton int
	currentHand  *holdem.Hand
	logger       zerolog.Logger
}

// New creates an empty table. maxRounds is accepted for parity with the
// reference table's configurable round count, but every hand dealt here
// is No-Limit Hold'em with its four fixed streets (preflop/flop/turn/
// river)  -  internal/holdem does not take it as a parameter, so it is
// kept only for callers that want to report table capacity.
func New(maxPlayers, maxRounds int, logger zerolog.Logger) *Table {
	return &Table{
		maxPlayers: maxPlayers,
		maxRounds:  maxRounds,
		players:    make([]uint32, 0, maxPlayers),
		logger:     logger,
	}
}

// Join seats a player at the next open spot.
func (t *Table) Join(player uint32) error {
	if len(t.players) >= t.maxPlayers {
		return fmt.Errorf("%w: %d/%d seats taken", ErrTableFull, len(t.players), t.maxPlayers)
	}
	t.players = append(t.players, player)
	return nil
}

// StartHand deals a fresh hand with the current roster. It refuses while
// the previous hand (if any) has not reached PhaseFinished or
// PhaseCheated  -  exactly the reference table's start_hand guard.
func (t *Table) StartHand(initialChips, smallBlind uint64) error {
	if t.currentHand != nil {
		phase := t.currentHand.CurrentAction().Phase
		if phase != holdem.PhaseFinished && phase != holdem.PhaseCheated {
			return ErrHandInProgress
		}
	}

	h, err := holdem.New(len(t.players), t.dealerButton, initialChips, smallBlind, t.logger)
	if err != nil {
		return fmt.Errorf("table: start hand: %w", err)
	}
	t.currentHand = h
	t.logger.Info().Int("players", len(t.players)).Int("dealer", t.dealerButton).Msg("hand started")
	return nil
}

// CurrentHand returns the active hand, or nil if none has been started
// yet.
func (t *Table) CurrentHand() *holdem.Hand {
	return t.currentHand
}

func (t *Table) MaxPlayers() int  { return t.maxPlayers }
func (t *Table) MaxRounds() int   { return t.maxRounds }
func (t *Table) PlayerCount() int { return len(t.players) }

// Player reports the seated player identifier at the given seat index.
func (t *Table) Player(index int) (uint32, error) {
	if index < 0 || index >= len(t.players) {
		return 0, fmt.Errorf("%w: %d", ErrPlayerIndexOutOfBounds, index)
	}
	return t.players[index], nil
}

// DealerButton reports the seat index the button is currently assigned
// to. The reference table never rotates it between hands  -  every
// start_hand call reuses the table's original dealer_button field  -  and
// this implementation preserves that rather than introducing rotation
// the original does not have.
func (t *Table) DealerButton() int {
	return t.dealerButton
}
