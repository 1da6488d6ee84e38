package bridge

import (
	"math/rand"
	"strings"

	"github.com/Ark223/AlphaBridge/internal/combin"
)

// Solver is the external double-dummy-solver collaborator. The core
// requires only that these operations exist, are synchronous, and are
// deterministic given identical inputs — the exact binary interface is
// the solver's concern, and no implementation of it lives in this
// package. See internal/solver for a concrete adapter.
type Solver interface {
	// NewHandle constructs a solver session for a full PBN deal string
	// (cards already played in completed tricks omitted), the trump
	// strain, and the seat that leads the current (possibly in-progress)
	// trick.
	NewHandle(pbnDeal string, strain Suit, leader Player) (SolverHandle, error)
}

// SolverHandle is a single scoped solver session. Every acquired handle
// must be Released on every exit path.
type SolverHandle interface {
	// Command replays a space-joined sequence of card strings already
	// played in the current (in-progress) trick.
	Command(cards string) error
	// TricksFor returns the double-dummy trick count assuming card is
	// played next.
	TricksFor(card Card) (int, error)
	// Release returns the handle to the solver's resource pool.
	Release()
}

// Deal is an assignment of cards to each of the four seats, as produced by
// Sampler.Generate. A complete deal holds 13 cards per seat; Generate can
// return a deal in which some seats hold fewer.
type Deal [NumPlayers][]Card

// Sampler draws deals consistent with a Game's current state and per-seat
// constraints, and scores legal moves via an external Solver. A Sampler
// borrows an independent copy of the state it was built from; mutating the
// originating Game afterward has no effect on it.
type Sampler struct {
	hands  [NumPlayers]Mask52
	plays  [NumPlayers]Mask52
	hidden Mask52
	voids  uint16
	trick  Trick

	contract    Contract
	constraints [NumPlayers]SeatConstraints
	legalMoves  []Card

	assigned [NumPlayers]Mask52
	needed   [NumPlayers]int
	lefts    []Card

	rng *rand.Rand
}

// Sampling builds a Sampler bound to the Game's present state. Distinct
// Samplers may be used from separate goroutines/workers concurrently; each
// carries its own RNG stream seeded from seed.
func (g *Game) Sampling(seed int64) *Sampler {
	s := &Sampler{
		hands:       g.hands,
		plays:       g.plays,
		hidden:      g.hidden,
		voids:       g.voids,
		trick:       g.trick,
		contract:    g.contract,
		constraints: g.constraints,
		legalMoves:  g.GetMoves(),
		rng:         rand.New(rand.NewSource(seed)),
	}
	s.prepare()
	return s
}

// prepare unplays the current trick so the solver can replay it itself via
// its own protocol, then precomputes each seat's assigned cards and
// remaining need.
func (s *Sampler) prepare() {
	seat := s.trick.Leader
	for i := 0; i < s.trick.Count; i++ {
		c := s.trick.Cards[i]
		s.hands[seat] = s.hands[seat].Set(c)
		s.plays[seat] = s.plays[seat].Clear(c)
		seat = seat.Next()
	}

	for p := 0; p < NumPlayers; p++ {
		s.assigned[p] = s.hands[p] | s.plays[p]
		s.needed[p] = 13 - s.assigned[p].Count()
	}
	s.lefts = s.hidden.Cards()
}

// Generate produces one candidate deal via a biased, void-respecting
// FIFO-with-requeue draw. It may abandon and return a partial deal (some
// seats short of 13 cards) if the pool is exhausted under the current
// void constraints; callers detect a short hand and retry.
func (s *Sampler) Generate() Deal {
	pool := append([]Card(nil), s.lefts...)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	var deal Deal
	for p := 0; p < NumPlayers; p++ {
		deal[p] = append(deal[p], s.assigned[p].Cards()...)
	}

	for p := Player(0); p < NumPlayers; p++ {
		needed := s.needed[p]
		if needed == 0 || len(pool) == 0 {
			continue
		}
		stall := 0
		for needed > 0 && len(pool) > 0 && stall < len(pool) {
			c := pool[0]
			pool = pool[1:]
			if s.voidBit(p, c.Suit) {
				pool = append(pool, c)
				stall++
				continue
			}
			deal[p] = append(deal[p], c)
			needed--
			stall = 0
		}
	}
	return deal
}

// SpaceSize estimates, ignoring void constraints, how many distinct
// assignments of the hidden pool to seats-with-capacity remain possible —
// the multinomial coefficient of the remaining needs. This is a diagnostic
// only; it is not required by any invariant, and nothing in this
// repository calls it.
func (s *Sampler) SpaceSize() uint64 {
	remaining := len(s.lefts)
	size := uint64(1)
	for p := 0; p < NumPlayers; p++ {
		if s.needed[p] == 0 {
			continue
		}
		size *= combin.Binomial(remaining, s.needed[p])
		remaining -= s.needed[p]
		if remaining < 0 {
			return 0
		}
	}
	return size
}

func (s *Sampler) voidBit(seat Player, suit Suit) bool {
	return s.voids&(1<<(uint(seat)*4+uint(suit))) != 0
}

// Filter reports whether deal satisfies every edited seat constraint.
func (s *Sampler) Filter(deal Deal) bool {
	for p := 0; p < NumPlayers; p++ {
		c := s.constraints[p]
		if !c.Edited {
			continue
		}
		if len(deal[p]) != 13 {
			return false
		}
		var hcp int
		var counts [NumSuits]int
		for _, card := range deal[p] {
			hcp += card.HCP()
			counts[card.Suit]++
		}
		if !c.HCP.Contains(hcp) {
			return false
		}
		for suit := Suit(0); suit < NumSuits; suit++ {
			if !c.suitRange(suit).Contains(counts[suit]) {
				return false
			}
		}
	}
	return true
}

// Solve formats deal as a PBN string omitting already-played cards,
// constructs a solver instance, replays the in-progress trick (if any),
// and scores every legal move bound to this Sampler. The handle is
// released on every exit path.
func (s *Sampler) Solve(solver Solver, deal Deal) (map[Card]int, error) {
	pbn := s.formatPBN(deal)

	handle, err := solver.NewHandle(pbn, s.contract.Strain, s.trick.Leader)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	if s.trick.Count > 0 {
		parts := make([]string, s.trick.Count)
		for i := 0; i < s.trick.Count; i++ {
			parts[i] = s.trick.Cards[i].String()
		}
		if err := handle.Command(strings.Join(parts, " ")); err != nil {
			return nil, err
		}
	}

	results := make(map[Card]int, len(s.legalMoves))
	for _, c := range s.legalMoves {
		n, err := handle.TricksFor(c)
		if err != nil {
			return nil, err
		}
		results[c] = n
	}
	return results, nil
}

// formatPBN renders deal as space-separated N,E,S,W hands, suits S.H.D.C,
// high-to-low, omitting cards already recorded in s.plays (completed
// tricks only — the in-progress trick's cards are unplayed by prepare and
// so remain part of the seat's listed hand).
func (s *Sampler) formatPBN(deal Deal) string {
	seats := []Player{North, East, South, West}
	hands := make([]string, len(seats))
	for i, seat := range seats {
		remaining := make([]Card, 0, len(deal[seat]))
		for _, c := range deal[seat] {
			if s.plays[seat].Has(c) {
				continue
			}
			remaining = append(remaining, c)
		}
		hands[i] = formatHand(remaining)
	}
	return strings.Join(hands, " ")
}

// formatHand renders one seat's cards in PBN suit order S.H.D.C, each
// suit's ranks sorted high-to-low.
func formatHand(cards []Card) string {
	bySuit := map[Suit][]Rank{}
	for _, c := range cards {
		bySuit[c.Suit] = append(bySuit[c.Suit], c.Rank)
	}
	order := []Suit{Spades, Hearts, Diamonds, Clubs}
	parts := make([]string, len(order))
	for i, suit := range order {
		ranks := bySuit[suit]
		for a := 0; a < len(ranks); a++ {
			for b := a + 1; b < len(ranks); b++ {
				if ranks[b] > ranks[a] {
					ranks[a], ranks[b] = ranks[b], ranks[a]
				}
			}
		}
		var sb strings.Builder
		for _, r := range ranks {
			sb.WriteString(Rank(r).String())
		}
		parts[i] = sb.String()
	}
	return strings.Join(parts, ".")
}
