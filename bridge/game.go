package bridge

// Game is the partial-information state machine at the core of the engine.
// It owns its arrays and history stacks; Clone performs a deep copy.
//
// hands[s], plays[s] are 52-bit masks; lefts[s] is the count of hidden
// cards still belonging to seat s; hidden is the shared unknown pool;
// voids is a 16-bit matrix indexed by seat*4+suit.
type Game struct {
	hands [NumPlayers]Mask52
	plays [NumPlayers]Mask52
	lefts [NumPlayers]int
	hidden Mask52
	voids  uint16

	trick  Trick
	leader Player

	contract Contract

	nsTricks int
	ewTricks int

	constraints [NumPlayers]SeatConstraints

	undo []snapshot
	redo []snapshot
}

// snapshot is a structurally complete copy of the mutable state, sufficient
// to restore a Game exactly. Deliberately whole rather than a delta: the
// state involved in a single Play (void inference, forced assignment, card
// movement) spans every field below, and the whole thing is a handful of
// fixed-size arrays (160 bytes on a 64-bit platform), copied by value.
type snapshot struct {
	hands  [NumPlayers]Mask52
	plays  [NumPlayers]Mask52
	lefts  [NumPlayers]int
	hidden Mask52
	voids  uint16
	trick  Trick
	leader Player

	nsTricks int
	ewTricks int
}

func (g *Game) save() snapshot {
	return snapshot{
		hands:    g.hands,
		plays:    g.plays,
		lefts:    g.lefts,
		hidden:   g.hidden,
		voids:    g.voids,
		trick:    g.trick,
		leader:   g.leader,
		nsTricks: g.nsTricks,
		ewTricks: g.ewTricks,
	}
}

func (g *Game) restore(s snapshot) {
	g.hands = s.hands
	g.plays = s.plays
	g.lefts = s.lefts
	g.hidden = s.hidden
	g.voids = s.voids
	g.trick = s.trick
	g.leader = s.leader
	g.nsTricks = s.nsTricks
	g.ewTricks = s.ewTricks
}

// NewGame constructs a Game from per-seat known-hand masks (a fully known
// mask has all held cards set; an unknown hand passes an empty mask and
// relies on the hidden pool), the opening leader, and the contract. Any
// card index not present in any hands[s] is placed into the hidden pool
// and distributed across lefts by 13-hands[s].Count().
func NewGame(hands [NumPlayers]Mask52, leader Player, contract Contract) *Game {
	g := &Game{
		hands:    hands,
		leader:   leader,
		trick:    Trick{Leader: leader},
		contract: contract,
	}

	var known Mask52
	for s := 0; s < NumPlayers; s++ {
		known |= hands[s]
		g.lefts[s] = 13 - hands[s].Count()
	}
	g.hidden = Mask52(0xFFFFFFFFFFFFF) &^ known // all 52 bits minus known
	return g
}

// SetConstraints installs sampling constraints for seat s and marks them
// edited.
func (g *Game) SetConstraints(s Player, c SeatConstraints) {
	c.Edited = true
	g.constraints[s] = c
}

// Contract returns the contract this game is played to.
func (g *Game) Contract() Contract { return g.contract }

// Leader returns the seat to act next.
func (g *Game) Leader() Player { return g.leader }

// Trick returns the trick currently in progress.
func (g *Game) Trick() Trick { return g.trick }

// Tricks returns the running trick counts for NS and EW.
func (g *Game) Tricks() (ns, ew int) { return g.nsTricks, g.ewTricks }

// IsOver reports whether all 13 tricks have completed.
func (g *Game) IsOver() bool { return g.nsTricks+g.ewTricks == 13 }

// Clone performs a deep copy of the Game, including its undo/redo history.
func (g *Game) Clone() *Game {
	clone := *g
	clone.undo = append([]snapshot(nil), g.undo...)
	clone.redo = append([]snapshot(nil), g.redo...)
	return &clone
}

// allPlays returns the union of every seat's played-cards mask.
func (g *Game) allPlays() Mask52 {
	var m Mask52
	for s := 0; s < NumPlayers; s++ {
		m |= g.plays[s]
	}
	return m
}

// isVoid reports whether seat has been proved void in suit.
func (g *Game) isVoid(seat Player, suit Suit) bool {
	return g.voids&(1<<(uint(seat)*4+uint(suit))) != 0
}

func (g *Game) setVoid(seat Player, suit Suit) {
	g.voids |= 1 << (uint(seat)*4 + uint(suit))
}

func (g *Game) clearVoid(seat Player, suit Suit) {
	g.voids &^= 1 << (uint(seat)*4 + uint(suit))
}
