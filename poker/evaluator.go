package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Category enumerates hand categories ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every category from strongest to weakest.
var Categories = [...]Category{
	RoyalFlush, StraightFlush, FourOfAKind, FullHouse, Flush,
	Straight, ThreeOfAKind, TwoPair, OnePair, HighCard,
}

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

var (
	// ErrHandSize is returned when a hand does not hold between 5 and 7 cards.
	ErrHandSize = errors.New("hand must contain 5 to 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
)

const rankBits = 1<<NumRanks - 1

// HandRank is a category plus the tiebreak ranks that order hands within it.
// HandRanks compare first by category, then lexicographically by tiebreak.
type HandRank struct {
	Category Category
	tiebreak [5]Rank
	n        uint8
}

// Tiebreak returns the ranks used to break ties within the category, most
// significant first.
func (hr HandRank) Tiebreak() []Rank {
	out := make([]Rank, hr.n)
	copy(out, hr.tiebreak[:hr.n])
	return out
}

// Compare returns 1 if hr beats other, -1 if it loses, 0 for a tie.
func (hr HandRank) Compare(other HandRank) int {
	if hr.Category != other.Category {
		if hr.Category > other.Category {
			return 1
		}
		return -1
	}
	n := min(hr.n, other.n)
	for i := range n {
		switch {
		case hr.tiebreak[i] > other.tiebreak[i]:
			return 1
		case hr.tiebreak[i] < other.tiebreak[i]:
			return -1
		}
	}
	switch {
	case hr.n > other.n:
		return 1
	case hr.n < other.n:
		return -1
	}
	return 0
}

// Beats reports whether hr is strictly stronger than other.
func (hr HandRank) Beats(other HandRank) bool {
	return hr.Compare(other) > 0
}

// String renders the rank as e.g. "One Pair [A J 9 8]".
func (hr HandRank) String() string {
	parts := make([]string, hr.n)
	for i, r := range hr.tiebreak[:hr.n] {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%s [%s]", hr.Category, strings.Join(parts, " "))
}

func (hr *HandRank) push(ranks ...Rank) {
	for _, r := range ranks {
		hr.tiebreak[hr.n] = r
		hr.n++
	}
}

// Evaluate returns the rank of the best five-card hand within cards. It fails
// fast on anything other than 5 to 7 distinct valid cards.
func Evaluate(cards []Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandRank{}, fmt.Errorf("%w: got %d", ErrHandSize, len(cards))
	}
	var hand Hand
	for _, c := range cards {
		if !c.Valid() {
			return HandRank{}, fmt.Errorf("%w: id %d", ErrInvalidCard, c)
		}
		if hand.HasCard(c) {
			return HandRank{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		hand.AddCard(c)
	}
	return EvaluateHand(hand), nil
}

// EvaluateHand ranks a hand already known to hold 5 to 7 cards. Behaviour is
// undefined for other sizes.
func EvaluateHand(hand Hand) HandRank {
	var suitMasks [NumSuits]uint16
	var rankMask uint16
	flushSuit := -1
	for s := range NumSuits {
		mask := uint16(uint64(hand)>>(s*NumRanks)) & rankBits
		suitMasks[s] = mask
		rankMask |= mask
		if bits.OnesCount16(mask) >= 5 {
			flushSuit = s
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripsMask := ((s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)) &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ (tripsMask | quadsMask)

	var flushMask uint16
	var sfTop Rank
	var hasStraightFlush bool
	if flushSuit >= 0 {
		flushMask = suitMasks[flushSuit]
		sfTop, hasStraightFlush = straightTop(flushMask)
	}
	straightHigh, hasStraight := straightTop(rankMask)

	var hr HandRank
	switch {
	case hasStraightFlush && sfTop == Ace:
		hr.Category = RoyalFlush
		hr.push(Ace)
	case hasStraightFlush:
		hr.Category = StraightFlush
		hr.push(sfTop)
	case quadsMask != 0:
		quad := highest(quadsMask)
		hr.Category = FourOfAKind
		hr.push(quad)
		hr.push(topRanks(rankMask&^bit(quad), 1)...)
	case tripsMask != 0 && (bits.OnesCount16(tripsMask) > 1 || pairsMask != 0):
		trip := highest(tripsMask)
		hr.Category = FullHouse
		hr.push(trip, highest((tripsMask&^bit(trip))|pairsMask))
	case flushSuit >= 0:
		hr.Category = Flush
		hr.push(topRanks(flushMask, 5)...)
	case hasStraight:
		hr.Category = Straight
		hr.push(straightHigh)
	case tripsMask != 0:
		trip := highest(tripsMask)
		hr.Category = ThreeOfAKind
		hr.push(trip)
		hr.push(topRanks(rankMask&^bit(trip), 2)...)
	case bits.OnesCount16(pairsMask) >= 2:
		high := highest(pairsMask)
		low := highest(pairsMask &^ bit(high))
		hr.Category = TwoPair
		hr.push(high, low)
		hr.push(topRanks(rankMask&^(bit(high)|bit(low)), 1)...)
	case pairsMask != 0:
		pair := highest(pairsMask)
		hr.Category = OnePair
		hr.push(pair)
		hr.push(topRanks(rankMask&^bit(pair), 3)...)
	default:
		hr.Category = HighCard
		hr.push(topRanks(rankMask, 5)...)
	}
	return hr
}

// straightTop returns the top rank of the highest five-rank run in mask. Bit 0
// of the shifted mask is a low-ace sentinel so A-2-3-4-5 reports Five.
func straightTop(mask uint16) (Rank, bool) {
	ext := mask<<1 | (mask>>Ace)&1
	seq := ext & (ext >> 1) & (ext >> 2) & (ext >> 3) & (ext >> 4)
	if seq == 0 {
		return 0, false
	}
	low := bits.Len16(seq) - 1
	return Rank(low + 3), true
}

func bit(r Rank) uint16 {
	return 1 << r
}

// highest returns the highest rank set in a non-empty mask.
func highest(mask uint16) Rank {
	return Rank(bits.Len16(mask) - 1)
}

// topRanks returns up to n ranks from mask in descending order.
func topRanks(mask uint16, n int) []Rank {
	ranks := make([]Rank, 0, n)
	for len(ranks) < n && mask != 0 {
		r := highest(mask)
		ranks = append(ranks, r)
		mask &^= bit(r)
	}
	return ranks
}
