package bridge

import "github.com/Ark223/AlphaBridge/internal/combin"

// Mask52 is a 52-bit bitmask over card indices 0..51, one bit per card.
type Mask52 uint64

// bit returns the bit for card index idx.
func bit(idx int) Mask52 { return Mask52(1) << uint(idx) }

// Has reports whether c's bit is set.
func (m Mask52) Has(c Card) bool { return m&bit(c.Index()) != 0 }

// Set returns m with c's bit set.
func (m Mask52) Set(c Card) Mask52 { return m | bit(c.Index()) }

// Clear returns m with c's bit cleared.
func (m Mask52) Clear(c Card) Mask52 { return m &^ bit(c.Index()) }

// Count returns the number of set bits.
func (m Mask52) Count() int { return combin.PopCount(uint64(m)) }

// Cards expands the mask into its constituent cards, in index order.
func (m Mask52) Cards() []Card {
	cards := make([]Card, 0, m.Count())
	for x := uint64(m); x != 0; x &= x - 1 {
		cards = append(cards, NewCardFromIndex(combin.TrailingZero(x)))
	}
	return cards
}

// SuitMask returns the 13 consecutive bits belonging to suit s.
func SuitMask(s Suit) Mask52 {
	return Mask52(0x1FFF) << uint(int(s)*13)
}
