package memory

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
)

var (
	ErrLocked          = fmt.Errorf("%w: waiting for the revealed pair to flip back", apperror.ErrInvalidMove)
	ErrAlreadyRevealed = fmt.Errorf("%w: card is already revealed", apperror.ErrInvalidMove)
	ErrGameComplete    = fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrGameFinished)
	ErrClosed          = fmt.Errorf("%w: game is closed", apperror.ErrGameFinished)
	ErrNoPairs         = errors.New("at least one pair is required")
)

// Pair is one card face; the deck holds two instances of each.
type Pair struct {
	ID   int    `json:"id"`
	Icon string `json:"icon"`
}

// Card is a single instance in the deck. ID is unique, Pair is shared by the twin.
type Card struct {
	ID   int    `json:"id"`
	Pair int    `json:"pair"`
	Icon string `json:"icon"`
}

// DefaultPairs are the faces of the original board.
var DefaultPairs = []Pair{
	{ID: 1, Icon: "heart-outline"},
	{ID: 2, Icon: "star-outline"},
	{ID: 3, Icon: "flower-outline"},
	{ID: 4, Icon: "diamond-outline"},
	{ID: 5, Icon: "moon-outline"},
	{ID: 6, Icon: "sunny-outline"},
	{ID: 7, Icon: "leaf-outline"},
	{ID: 8, Icon: "planet-outline"},
}

// State is one memory board. Methods never modify the receiver.
type State struct {
	Deck      []Card `json:"deck"`
	FaceUp    []int  `json:"face_up"`
	Matched   []int  `json:"matched"`
	Moves     int    `json:"moves"`
	Locked    bool   `json:"locked"`
	BestMoves int    `json:"best_moves"`
}

// Initialize deals a shuffled deck holding every pair twice.
func Initialize(pairs []Pair, src rules.Source) (State, error) {
	if len(pairs) == 0 {
		return State{}, ErrNoPairs
	}

	deck := make([]Card, 0, 2*len(pairs))
	for _, pair := range pairs {
		deck = append(deck, Card{Pair: pair.ID, Icon: pair.Icon}, Card{Pair: pair.ID, Icon: pair.Icon})
	}

	rules.Shuffle(src, deck)

	for i := range deck {
		deck[i].ID = i
	}

	return State{Deck: deck, FaceUp: []int{}, Matched: []int{}}, nil
}

// Restart deals a fresh deck from the same faces and keeps the best result.
func (that State) Restart(src rules.Source) State {
	next, err := Initialize(that.pairs(), src)
	if err != nil {
		return that
	}

	next.BestMoves = that.BestMoves

	return next
}

// Flip reveals the card at index. A second card completes a move: a match is
// kept face up, a mismatch locks the board until Resolve.
func (that State) Flip(index int) (State, error) {
	if that.Locked {
		return that, ErrLocked
	}

	if index < 0 || index >= len(that.Deck) {
		return that, fmt.Errorf("%w: card %d", apperror.ErrOutOfRange, index)
	}

	if that.IsComplete() {
		return that, ErrGameComplete
	}

	if slices.Contains(that.FaceUp, index) || slices.Contains(that.Matched, index) {
		return that, ErrAlreadyRevealed
	}

	next := that.clone()
	next.FaceUp = append(next.FaceUp, index)

	if len(next.FaceUp) < 2 {
		return next, nil
	}

	next.Moves++

	first, second := next.FaceUp[0], next.FaceUp[1]
	if next.Deck[first].Pair != next.Deck[second].Pair {
		next.Locked = true
		return next, nil
	}

	next.Matched = append(next.Matched, first, second)
	next.FaceUp = next.FaceUp[:0]

	if next.IsComplete() && (next.BestMoves == 0 || next.Moves < next.BestMoves) {
		next.BestMoves = next.Moves
	}

	return next, nil
}

// Resolve turns a mismatched pair back over.
func (that State) Resolve() State {
	if !that.Locked {
		return that
	}

	next := that.clone()
	next.FaceUp = next.FaceUp[:0]
	next.Locked = false

	return next
}

func (that State) IsComplete() bool {
	return len(that.Deck) > 0 && len(that.Matched) == len(that.Deck)
}

func (that State) IsRevealed(index int) bool {
	return slices.Contains(that.FaceUp, index) || slices.Contains(that.Matched, index)
}

func (that State) clone() State {
	next := that
	next.Deck = slices.Clone(that.Deck)
	next.FaceUp = append(make([]int, 0, 2), that.FaceUp...)
	next.Matched = slices.Clone(that.Matched)

	return next
}

// pairs recovers the faces of the deck, ordered by pair id.
func (that State) pairs() []Pair {
	seen := make(map[int]bool, len(that.Deck)/2)
	pairs := make([]Pair, 0, len(that.Deck)/2)

	for _, card := range that.Deck {
		if seen[card.Pair] {
			continue
		}
		seen[card.Pair] = true
		pairs = append(pairs, Pair{ID: card.Pair, Icon: card.Icon})
	}

	slices.SortFunc(pairs, func(a, b Pair) int { return a.ID - b.ID })

	return pairs
}
