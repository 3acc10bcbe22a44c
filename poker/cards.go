package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Rank is a card rank from Two (0) through Ace (12).
type Rank uint8

// Suit is a card suit. The numbering follows the card id layout (id div 13).
type Suit uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

const (
	// NumRanks is the number of distinct ranks in a suit.
	NumRanks = 13
	// NumSuits is the number of suits in a deck.
	NumSuits = 4
	// NumCards is the size of a full deck.
	NumCards = NumRanks * NumSuits
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "shcd"
)

// ErrInvalidCard is returned when a card id or card string is out of range.
var ErrInvalidCard = errors.New("invalid card")

// Card identifies one of the 52 cards: rank = id mod 13, suit = id div 13.
type Card uint8

// NewCard builds the card with the given rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(suit)*NumRanks + uint8(rank))
}

// Rank returns the card's rank.
func (c Card) Rank() Rank {
	return Rank(uint8(c) % NumRanks)
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(uint8(c) / NumRanks)
}

// Valid reports whether c is one of the 52 card ids.
func (c Card) Valid() bool {
	return c < NumCards
}

// String renders the card as rank character + suit character, e.g. "As".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// String returns the single-character rank symbol.
func (r Rank) String() string {
	if r >= NumRanks {
		return "?"
	}
	return string(rankChars[r])
}

// String returns the single-character suit symbol.
func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the unicode suit glyph used by the terminal display.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// ParseCard parses a two-character card like "As", "Td" or "2h".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q must be two characters", ErrInvalidCard, s)
	}
	r := strings.IndexByte(rankChars, upper(s[0]))
	if r < 0 {
		return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, s[0])
	}
	su := strings.IndexByte(suitChars, lower(s[1]))
	if su < 0 {
		return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, s[1])
	}
	return NewCard(Rank(r), Suit(su)), nil
}

// ParseCards parses a run of cards such as "AsKd7c". Spaces and commas are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(" ", "", ",", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %q has an odd number of characters", ErrInvalidCard, s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals known to be valid. It panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins card strings with a single space.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// Hand is a set of cards stored as a bitset, one bit per card id.
type Hand uint64

// NewHand builds a hand from the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h.AddCard(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= 1 << c
}

// HasCard reports whether the card is in the hand.
func (h Hand) HasCard(c Card) bool {
	return h&(1<<c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Cards returns the hand's cards in ascending id order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for m := uint64(h); m != 0; m &= m - 1 {
		cards = append(cards, Card(bits.TrailingZeros64(m)))
	}
	return cards
}

// Complement returns every card of a full deck that is not in h.
func (h Hand) Complement() Hand {
	const full = Hand(1<<NumCards - 1)
	return full &^ h
}
