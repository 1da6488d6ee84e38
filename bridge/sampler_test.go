package bridge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSolver is a deterministic in-memory stand-in for the external
// double-dummy solver, used only in tests — it never claims to compute
// real double-dummy results.
type fakeSolver struct {
	handles []*fakeHandle
}

type fakeHandle struct {
	pbn      string
	strain   Suit
	leader   Player
	commands []string
	released bool
}

func (f *fakeSolver) NewHandle(pbn string, strain Suit, leader Player) (SolverHandle, error) {
	h := &fakeHandle{pbn: pbn, strain: strain, leader: leader}
	f.handles = append(f.handles, h)
	return h, nil
}

func (h *fakeHandle) Command(cards string) error {
	h.commands = append(h.commands, cards)
	return nil
}

func (h *fakeHandle) TricksFor(c Card) (int, error) {
	return c.HCP(), nil // arbitrary deterministic function of the card
}

func (h *fakeHandle) Release() { h.released = true }

func TestSamplerGenerateFilterRespectsConstraints(t *testing.T) {
	g := newTestGame(t, Contract{Strain: NoTrump})
	g.SetConstraints(East, SeatConstraints{
		HCP:      Range{Min: 15, Max: 17},
		Spades:   Range{Min: 5, Max: 5},
		Hearts:   FullRange,
		Diamonds: FullRange,
		Clubs:    FullRange,
	})

	s := g.Sampling(42)

	accepted := 0
	for attempt := 0; attempt < 20000 && accepted < 5; attempt++ {
		deal := s.Generate()
		if len(deal[East]) != 13 {
			continue // pool exhausted this attempt, caller retries
		}
		if !s.Filter(deal) {
			continue
		}
		accepted++

		var hcp, spadeCount int
		for _, c := range deal[East] {
			hcp += c.HCP()
			if c.Suit == Spades {
				spadeCount++
			}
		}
		require.GreaterOrEqual(t, hcp, 15)
		require.LessOrEqual(t, hcp, 17)
		require.Equal(t, 5, spadeCount)
		require.Len(t, deal[East], 13)
	}
	require.Greater(t, accepted, 0, "expected at least one accepted deal in 20000 attempts")
}

func TestSamplerGenerateProducesDisjointFullHands(t *testing.T) {
	g := newTestGame(t, Contract{Strain: NoTrump})
	s := g.Sampling(7)
	deal := s.Generate()

	seen := make(map[Card]Player)
	for p := Player(0); p < NumPlayers; p++ {
		require.Len(t, deal[p], 13)
		for _, c := range deal[p] {
			if owner, ok := seen[c]; ok {
				t.Fatalf("card %v assigned to both %v and %v", c, owner, p)
			}
			seen[c] = p
		}
	}
	require.Len(t, seen, 52)
}

func TestSamplerGenerateRespectsVoids(t *testing.T) {
	g := newTestGame(t, Contract{Strain: NoTrump})
	g.setVoid(East, Diamonds)
	s := g.Sampling(3)
	deal := s.Generate()
	for _, c := range deal[East] {
		if c.Suit == Diamonds {
			t.Fatalf("East is void in diamonds but was dealt %v", c)
		}
	}
}

func TestSamplerSolveReleasesHandleAndScoresLegalMoves(t *testing.T) {
	g := newTestGame(t, Contract{Level: 3, Strain: NoTrump})
	s := g.Sampling(1)
	deal := s.Generate()

	solver := &fakeSolver{}
	results, err := s.Solve(solver, deal)
	require.NoError(t, err)
	require.Len(t, solver.handles, 1)
	require.True(t, solver.handles[0].released, "handle must be released")

	for _, c := range g.GetMoves() {
		got, ok := results[c]
		require.True(t, ok, "missing result for legal move %v", c)
		require.Equal(t, c.HCP(), got)
	}
}

// TestSamplerSolveOmitsCompletedTrickCards exercises Solve after a full
// trick has already been played: the PBN handed to the solver must not
// repeat any seat's card from that completed trick, even though Generate's
// deal still carries it as part of the seat's holding.
func TestSamplerSolveOmitsCompletedTrickCards(t *testing.T) {
	g := newTestGame(t, Contract{Strain: NoTrump})

	// North leads the ace of spades; East/South/West each show out with a
	// hidden diamond so the trick resolves and a second trick begins.
	require.True(t, g.Play(Card{Rank: RankAce, Suit: Spades}, false))
	require.True(t, g.Play(Card{Rank: RankTwo, Suit: Diamonds}, false))
	require.True(t, g.Play(Card{Rank: RankEight, Suit: Diamonds}, false))
	require.True(t, g.Play(Card{Rank: RankNine, Suit: Diamonds}, false))

	ns, ew := g.Tricks()
	require.Equal(t, 1, ns+ew, "one trick should have resolved")
	require.Equal(t, 0, g.trick.Count, "the new trick should be empty")

	s := g.Sampling(5)
	deal := s.Generate()

	solver := &fakeSolver{}
	_, err := s.Solve(solver, deal)
	require.NoError(t, err)
	require.Len(t, solver.handles, 1)

	pbn := solver.handles[0].pbn
	fields := strings.Fields(pbn)
	require.Len(t, fields, 4)

	require.NotContains(t, strings.Split(fields[North], ".")[0], "A",
		"North's already-played ace of spades must not appear in the solver's PBN")
	require.NotContains(t, strings.Split(fields[East], ".")[2], "2",
		"East's already-played 2D must not appear in the solver's PBN")
	require.NotContains(t, strings.Split(fields[South], ".")[2], "8",
		"South's already-played 8D must not appear in the solver's PBN")
	require.NotContains(t, strings.Split(fields[West], ".")[2], "9",
		"West's already-played 9D must not appear in the solver's PBN")
}

func TestFormatHandSortsHighToLow(t *testing.T) {
	hand := []Card{
		{Rank: RankTwo, Suit: Spades},
		{Rank: RankAce, Suit: Spades},
		{Rank: RankKing, Suit: Spades},
	}
	// PBN order is S.H.D.C; with only spades populated the remaining
	// suits render as empty strings joined by dots.
	got := formatHand(hand)
	want := "AK2..."
	if got != want {
		t.Errorf("formatHand = %q, want %q", got, want)
	}
}
