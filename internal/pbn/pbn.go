// Package pbn parses and formats PBN (Portable Bridge Notation)
// deal/card/contract notation. It is a pure syntactic translator with no
// game-rule knowledge of its own.
package pbn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ark223/AlphaBridge/bridge"
)

// ParseCard parses a two-character card string (rank then suit),
// case-insensitively. Ranks: 2..9, T, J, Q, K, A. Suits: C, D, H, S.
func ParseCard(s string) (bridge.Card, bool) {
	if len(s) != 2 {
		return bridge.Card{}, false
	}
	rank, ok := parseRank(s[0])
	if !ok {
		return bridge.Card{}, false
	}
	suit, ok := parseSuit(s[1])
	if !ok {
		return bridge.Card{}, false
	}
	return bridge.Card{Rank: rank, Suit: suit}, true
}

// FormatCard renders a card as two uppercase characters, rank then suit.
func FormatCard(c bridge.Card) string {
	return c.Rank.String() + c.Suit.String()
}

func parseRank(b byte) (bridge.Rank, bool) {
	switch b {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		n, _ := strconv.Atoi(string(b))
		return bridge.Rank(n), true
	case 'T', 't':
		return bridge.RankTen, true
	case 'J', 'j':
		return bridge.RankJack, true
	case 'Q', 'q':
		return bridge.RankQueen, true
	case 'K', 'k':
		return bridge.RankKing, true
	case 'A', 'a':
		return bridge.RankAce, true
	default:
		return 0, false
	}
}

func parseSuit(b byte) (bridge.Suit, bool) {
	switch b {
	case 'C', 'c':
		return bridge.Clubs, true
	case 'D', 'd':
		return bridge.Diamonds, true
	case 'H', 'h':
		return bridge.Hearts, true
	case 'S', 's':
		return bridge.Spades, true
	default:
		return 0, false
	}
}

// ParseContract parses a contract string: a level digit 1..7 followed by a
// strain character C|D|H|S|N (N = NoTrump). The empty string is the None
// sentinel.
func ParseContract(s string) (bridge.Contract, bool) {
	if s == "" {
		return bridge.NoContract, true
	}
	if len(s) != 2 {
		return bridge.Contract{}, false
	}
	level, err := strconv.Atoi(string(s[0]))
	if err != nil || level < 1 || level > 7 {
		return bridge.Contract{}, false
	}
	var strain bridge.Suit
	switch s[1] {
	case 'N', 'n':
		strain = bridge.NoTrump
	default:
		var ok bool
		strain, ok = parseSuit(s[1])
		if !ok {
			return bridge.Contract{}, false
		}
	}
	return bridge.Contract{Level: level, Strain: strain}, true
}

// FormatContract renders a contract per ParseContract's grammar; the None
// sentinel formats as "-".
func FormatContract(c bridge.Contract) string {
	return c.String()
}

// ParseDeal parses a PBN deal string: four space-separated hands in fixed
// order N, E, S, W, suits S.H.D.C. The literal "..." denotes a fully
// unknown hand (an all-zero mask).
func ParseDeal(s string) ([4]bridge.Mask52, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return [4]bridge.Mask52{}, fmt.Errorf("pbn: expected 4 hands, got %d", len(fields))
	}
	var hands [4]bridge.Mask52
	for i, hand := range fields {
		m, err := parseHand(hand)
		if err != nil {
			return [4]bridge.Mask52{}, fmt.Errorf("pbn: seat %d: %w", i, err)
		}
		hands[i] = m
	}
	return hands, nil
}

// parseHand parses one seat's suit-dot-separated hand in S.H.D.C order.
func parseHand(hand string) (bridge.Mask52, error) {
	suits := strings.Split(hand, ".")
	if len(suits) != 4 {
		return 0, fmt.Errorf("expected 4 suits, got %d in %q", len(suits), hand)
	}
	order := []bridge.Suit{bridge.Spades, bridge.Hearts, bridge.Diamonds, bridge.Clubs}
	var mask bridge.Mask52
	for i, ranks := range suits {
		suit := order[i]
		for _, r := range ranks {
			rank, ok := parseRank(byte(r))
			if !ok {
				return 0, fmt.Errorf("bad rank %q in suit %q", r, ranks)
			}
			mask = mask.Set(bridge.Card{Rank: rank, Suit: suit})
		}
	}
	return mask, nil
}

// FormatDeal renders four per-seat masks (already excluding any cards a
// caller wants omitted, e.g. played cards) as a PBN deal string in N,E,S,W
// order, ranks high-to-low within each suit.
func FormatDeal(hands [4]bridge.Mask52) string {
	parts := make([]string, 4)
	for i, m := range hands {
		parts[i] = formatHandMask(m)
	}
	return strings.Join(parts, " ")
}

func formatHandMask(m bridge.Mask52) string {
	order := []bridge.Suit{bridge.Spades, bridge.Hearts, bridge.Diamonds, bridge.Clubs}
	parts := make([]string, len(order))
	for i, suit := range order {
		cards := (m & bridge.SuitMask(suit)).Cards()
		var sb strings.Builder
		for j := len(cards) - 1; j >= 0; j-- { // Cards() is low-to-high; want high-to-low
			sb.WriteString(cards[j].Rank.String())
		}
		parts[i] = sb.String()
	}
	return strings.Join(parts, ".")
}
