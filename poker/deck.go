package poker

import (
	"math/rand/v2"
)

// Deck is an ordered sequence of cards dealt from the front.
type Deck struct {
	cards []Card
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a full 52-card deck shuffled with the given RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset restores all 52 cards and reshuffles.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for id := range Card(NumCards) {
		d.cards = append(d.cards, id)
	}
	d.Shuffle()
}

// Shuffle shuffles the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the first n cards. It returns nil when fewer than n remain.
func (d *Deck) Draw(n int) []Card {
	if n < 0 || n > len(d.cards) {
		return nil
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Sample draws n distinct cards uniformly at random from pool using a partial
// Fisher-Yates shuffle. The pool is reordered in place; the sample is its last n
// elements. It returns nil when the pool holds fewer than n cards.
func Sample(pool []Card, n int, rng *rand.Rand) []Card {
	if n < 0 || n > len(pool) {
		return nil
	}
	last := len(pool) - 1
	for i := 0; i < n; i++ {
		j := rng.IntN(last - i + 1)
		pool[j], pool[last-i] = pool[last-i], pool[j]
	}
	return pool[len(pool)-n:]
}
