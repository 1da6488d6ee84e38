package bridge

import "testing"

func TestTrickWinnerPlainSuit(t *testing.T) {
	tr := Trick{
		Leader: North,
		Cards: [4]Card{
			{Rank: RankAce, Suit: Spades},
			{Rank: RankTwo, Suit: Clubs},
			{Rank: RankKing, Suit: Spades},
			{Rank: RankThree, Suit: Clubs},
		},
		Count: 4,
	}
	if got := tr.winnerIndex(NoTrump); got != 0 {
		t.Errorf("winnerIndex = %d, want 0 (Ace of Spades led and highest)", got)
	}
}

func TestTrickWinnerTrumpBeatsLed(t *testing.T) {
	tr := Trick{
		Leader: North,
		Cards: [4]Card{
			{Rank: RankAce, Suit: Spades},
			{Rank: RankTwo, Suit: Spades},
			{Rank: RankTwo, Suit: Hearts}, // trump ruff
			{Rank: RankThree, Suit: Spades},
		},
		Count: 4,
	}
	if got := tr.winnerIndex(Hearts); got != 2 {
		t.Errorf("winnerIndex = %d, want 2 (trump ruff beats Ace led)", got)
	}
}

func TestTrickWinnerHighestTrump(t *testing.T) {
	tr := Trick{
		Cards: [4]Card{
			{Rank: RankTwo, Suit: Hearts},
			{Rank: RankKing, Suit: Hearts},
			{Rank: RankThree, Suit: Clubs},
			{Rank: RankAce, Suit: Hearts},
		},
		Count: 4,
	}
	if got := tr.winnerIndex(Hearts); got != 3 {
		t.Errorf("winnerIndex = %d, want 3 (highest trump)", got)
	}
}
