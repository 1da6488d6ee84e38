package bridge

// ledSuit returns the suit a card must follow this trick: the suit of the
// trick's first card if one has been played, otherwise the suit of the
// candidate card itself (any lead is legal).
func (g *Game) ledSuit(candidate Suit) Suit {
	if g.trick.Count > 0 {
		return g.trick.LedSuit()
	}
	return candidate
}

// IsLegal reports whether c is a legal play for the current leader.
func (g *Game) IsLegal(c Card) bool {
	leader := g.leader

	// 1. Ownership possible.
	owned := g.hands[leader].Has(c)
	hiddenOwnable := g.hidden.Has(c) && g.lefts[leader] > 0
	if !owned && !hiddenOwnable {
		return false
	}

	// 2. Not already played.
	if g.allPlays().Has(c) {
		return false
	}

	// 3. Follow-suit, enforced only against the known hand.
	led := g.ledSuit(c.Suit)
	if g.trick.Count > 0 && (g.hands[leader]&SuitMask(led)) != 0 {
		if c.Suit != led {
			return false
		}
	}

	// 4. Void consistency.
	if g.isVoid(leader, c.Suit) {
		return false
	}

	return true
}

// GetMoves returns every card that would pass IsLegal for the current
// leader. Order is unspecified.
func (g *Game) GetMoves() []Card {
	leader := g.leader
	unplayed := ^g.allPlays()

	available := unplayed & g.hands[leader]
	if g.lefts[leader] > 0 {
		available |= unplayed & g.hidden
	}

	if g.trick.Count > 0 {
		led := g.trick.LedSuit()
		if (g.hands[leader] & SuitMask(led)) != 0 {
			available &= SuitMask(led)
		}
	}

	moves := make([]Card, 0, available.Count())
	for _, c := range available.Cards() {
		if g.isVoid(leader, c.Suit) {
			continue
		}
		moves = append(moves, c)
	}
	return moves
}
