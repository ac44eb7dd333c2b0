package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/rs/zerolog"

	"crumble"
	"crumble/internal/deck"
	"crumble/internal/ocpcrypto"
	"crumble/internal/shuffleproof"
)

// bot is a local, trusted stand-in for one player's client: it holds the
// ephemeral signing key and shuffle witness a real player would keep
// private, and answers whatever the table's CurrentAction asks for.
// Grounded on original_source/apps/crum_bot/src/main.rs's PokerBot/act().
type bot struct {
	playerID uint32
	sk       ocpcrypto.Scalar
	trace    shuffleproof.Trace
	rng      *rand.Rand
}

func newBot(playerID uint32, seed uint64) (*bot, error) {
	sk, err := ocpcrypto.ScalarRandom()
	if err != nil {
		return nil, fmt.Errorf("new bot: %w", err)
	}
	return &bot{playerID: playerID, sk: sk, rng: rand.New(rand.NewPCG(seed, uint64(playerID)))}, nil
}

func (b *bot) unmaskAll(points []ocpcrypto.G1Point) ([]ocpcrypto.G1Point, error) {
	out := make([]ocpcrypto.G1Point, len(points))
	for i, p := range points {
		opened, err := ocpcrypto.Unmask(p, b.sk)
		if err != nil {
			return nil, err
		}
		out[i] = opened
	}
	return out, nil
}

// act performs exactly the step the table's current action calls for,
// the same one-phase-at-a-time dispatch crum_bot's act() does.
func (b *bot) act(tb *crumble.Table, log zerolog.Logger) error {
	a := tb.CurrentAction()
	switch a.Phase {
	case crumble.PhaseShuffle:
		log.Info().Uint32("player", b.playerID).Bool("dealer", a.IsDealer).Msg("shuffle")
		masked := make([]ocpcrypto.G1Point, 0)
		for _, p := range tb.ShuffledDeck().Cards() {
			masked = append(masked, ocpcrypto.Mask(p, b.sk))
		}
		perm := b.rng.Perm(len(masked))
		shuffled := make([]ocpcrypto.G1Point, len(masked))
		for afterIdx, beforeIdx := range perm {
			shuffled[afterIdx] = masked[beforeIdx]
		}
		b.trace = shuffleproof.Record(perm)
		return tb.SubmitShuffledDeck(a.Player, deck.NewMaskedDeck(shuffled))
	case crumble.PhaseSmallBlind:
		log.Info().Uint32("player", b.playerID).Msg("small blind")
		return tb.SubmitSmallBlind(a.Player)
	case crumble.PhaseBigBlind:
		log.Info().Uint32("player", b.playerID).Msg("big blind")
		return tb.SubmitBigBlind(a.Player)
	case crumble.PhaseBet:
		log.Info().Uint32("player", b.playerID).Int("round", a.Round).Msg("check")
		return tb.SubmitBet(a.Player, 0)
	case crumble.PhaseUnmaskHoleCards:
		log.Info().Uint32("player", b.playerID).Msg("unmask hole cards")
		cards := tb.PlayerCards()
		for target, c := range cards {
			if target == a.Player {
				continue
			}
			opened, err := b.unmaskAll(c.Cards())
			if err != nil {
				return err
			}
			cards[target] = deck.NewUnmaskedCards(opened)
		}
		return tb.SubmitPlayerCards(a.Player, cards)
	case crumble.PhaseUnmaskCommunityCards:
		log.Info().Uint32("player", b.playerID).Int("round", a.Round).Msg("unmask community cards")
		current, err := tb.CommunityCards(a.Round)
		if err != nil {
			return err
		}
		opened, err := b.unmaskAll(current.Cards())
		if err != nil {
			return err
		}
		return tb.SubmitCommunityCards(a.Player, a.Round, deck.NewUnmaskedCards(opened))
	case crumble.PhaseUnmaskShowdown:
		log.Info().Uint32("player", b.playerID).Msg("unmask showdown")
		cards := tb.PlayerCards()
		opened, err := b.unmaskAll(cards[a.Player].Cards())
		if err != nil {
			return err
		}
		cards[a.Player] = deck.NewUnmaskedCards(opened)
		return tb.SubmitPlayerCardsShowdown(a.Player, cards)
	case crumble.PhaseSubmitPublicKey:
		log.Info().Uint32("player", b.playerID).Msg("submit public key")
		pk := ocpcrypto.MulG2(ocpcrypto.G2Generator(), b.sk)
		return tb.SubmitPublicKey(a.Player, pk, b.trace)
	default:
		return fmt.Errorf("crumblebot: unexpected phase %v", a.Phase)
	}
}

func describeCards(log zerolog.Logger, label string, d *deck.Deck, cards *deck.UnmaskedCards) {
	resolved, err := d.Resolve(cards)
	if err != nil {
		log.Error().Err(err).Str("which", label).Msg("could not resolve cards")
		return
	}
	strs := make([]string, len(resolved))
	for i, c := range resolved {
		strs[i] = c.String()
	}
	log.Info().Str("which", label).Strs("cards", strs).Msg("cards revealed")
}

func run(numPlayers int, initialChips, smallBlind uint64, log zerolog.Logger) error {
	tb := crumble.NewTable(numPlayers, log)
	bots := make([]*bot, numPlayers)
	for i := 0; i < numPlayers; i++ {
		b, err := newBot(uint32(i+1), uint64(i+1))
		if err != nil {
			return err
		}
		bots[i] = b
		if err := tb.Join(b.playerID); err != nil {
			return fmt.Errorf("join: %w", err)
		}
	}

	if err := tb.StartHand(initialChips, smallBlind); err != nil {
		return fmt.Errorf("start hand: %w", err)
	}

	for step := 0; step < 100_000; step++ {
		a := tb.CurrentAction()
		if a.Phase == crumble.PhaseFinished {
			log.Info().Msg("hand finished fairly")
			d := tb.Deck()
			for round := crumble.RoundFlop; round <= crumble.RoundRiver; round++ {
				if cards, err := tb.CommunityCards(int(round)); err == nil {
					describeCards(log, fmt.Sprintf("community round %d", round), d, cards)
				}
			}
			for i, c := range tb.PlayerCards() {
				describeCards(log, fmt.Sprintf("player %d hole cards", i+1), d, c)
				log.Info().Int("player", i+1).Uint64("chips", tb.ChipsRemaining(i)).Msg("final chips")
			}
			return nil
		}
		if a.Phase == crumble.PhaseCheated {
			return fmt.Errorf("crumblebot: hand ended in a detected cheat at player %d", a.Player)
		}
		if err := bots[a.Player].act(tb, log); err != nil {
			return fmt.Errorf("player %d action failed: %w", a.Player+1, err)
		}
	}
	return fmt.Errorf("crumblebot: hand did not finish within the step budget")
}

func main() {
	var (
		numPlayers   = flag.Int("players", 6, "number of bots seated at the table")
		initialChips = flag.Uint64("chips", 1000, "starting chip stack per player")
		smallBlind   = flag.Uint64("small-blind", 10, "small blind size (big blind is always double)")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	if err := run(*numPlayers, *initialChips, *smallBlind, log); err != nil {
		log.Error().Err(err).Msg("crumblebot failed")
		os.Exit(1)
	}
}
