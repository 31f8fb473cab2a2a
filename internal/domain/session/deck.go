package session

import (
	"github.com/phrazzld/hero-flashcards/internal/domain"
)

// Deck holds the characters that have not been mastered, in canonical order
// and in the most recent shuffled order. Both sequences always contain the
// same characters.
type Deck struct {
	canonical []domain.Character
	shuffled  []domain.Character
}

// NewDeck creates a deck from characters in canonical order. The shuffled
// order starts out identical to the canonical order.
func NewDeck(chars []domain.Character) *Deck {
	return &Deck{
		canonical: clone(chars),
		shuffled:  clone(chars),
	}
}

// Len returns the number of characters in the deck.
func (d *Deck) Len() int {
	return len(d.canonical)
}

// Canonical returns a copy of the canonical order.
func (d *Deck) Canonical() []domain.Character {
	return clone(d.canonical)
}

// Shuffled returns a copy of the shuffled order.
func (d *Deck) Shuffled() []domain.Character {
	return clone(d.shuffled)
}

// sequence returns the active order without copying.
func (d *Deck) sequence(shuffled bool) []domain.Character {
	if shuffled {
		return d.shuffled
	}
	return d.canonical
}

// shuffle replaces the shuffled order with a Fisher-Yates permutation of from.
// intn must return a uniform integer in [0, n).
func (d *Deck) shuffle(from []domain.Character, intn func(n int) int) {
	out := clone(from)
	for i := len(out) - 1; i > 0; i-- {
		j := intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	d.shuffled = out
}

// remove deletes the character with the given ID from both orders.
func (d *Deck) remove(id int64) (domain.Character, bool) {
	idx := domain.IndexOf(d.canonical, id)
	if idx < 0 {
		return domain.Character{}, false
	}
	removed := d.canonical[idx]
	d.canonical = without(d.canonical, idx)

	if sIdx := domain.IndexOf(d.shuffled, id); sIdx >= 0 {
		d.shuffled = without(d.shuffled, sIdx)
	}
	return removed, true
}

func clone(chars []domain.Character) []domain.Character {
	out := make([]domain.Character, len(chars))
	copy(out, chars)
	return out
}

func without(chars []domain.Character, idx int) []domain.Character {
	out := make([]domain.Character, 0, len(chars)-1)
	out = append(out, chars[:idx]...)
	return append(out, chars[idx+1:]...)
}
