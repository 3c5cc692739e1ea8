package scramble

import (
	"errors"
	"strings"
	"unicode"

	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
)

var ErrEmptyWordBank = errors.New("word bank has no usable words")

var DefaultWords = []string{
	"MINDFULNESS",
	"MEDITATION",
	"PEACEFUL",
	"HARMONY",
	"BALANCE",
	"SERENITY",
	"TRANQUIL",
	"WELLNESS",
	"HEALING",
	"CALMNESS",
}

// Game is one word-scramble session. Score and Best carry over between rounds.
type Game struct {
	Answer    string `json:"-"`
	Scrambled string `json:"scrambled"`
	Score     int    `json:"score"`
	Best      int    `json:"best"`
	Solved    bool   `json:"solved"`
	Failed    bool   `json:"failed"`
}

// Start opens the first round of a new session.
func Start(bank []string, src rules.Source) (Game, error) {
	return Game{}.NewRound(bank, src)
}

// NewRound draws a word and scrambles it. Scores are kept.
func (that Game) NewRound(bank []string, src rules.Source) (Game, error) {
	words := normalize(bank)

	word, ok := rules.Pick(src, words)
	if !ok {
		return that, ErrEmptyWordBank
	}

	return Game{
		Answer:    word,
		Scrambled: Scramble(word, src),
		Score:     that.Score,
		Best:      that.Best,
	}, nil
}

// Submit compares answer with the word, ignoring case. A wrong answer only
// raises Failed; a solved round ignores further answers.
func (that Game) Submit(answer string) (bool, Game) {
	if that.Solved || that.Answer == "" {
		return false, that
	}

	next := that

	if !strings.EqualFold(answer, that.Answer) {
		next.Failed = true
		return false, next
	}

	next.Failed = false
	next.Solved = true
	next.Score++
	next.Best = max(next.Best, next.Score)

	return true, next
}

// Scramble permutes the letters of word. When the shuffle lands on the word
// itself the result is rotated by one, so any word with two distinct letters
// comes back in a different order.
func Scramble(word string, src rules.Source) string {
	letters := []rune(word)
	rules.Shuffle(src, letters)

	if string(letters) == word && len(letters) > 1 {
		letters = append(letters[1:], letters[0])
	}

	return string(letters)
}

func normalize(bank []string) []string {
	words := make([]string, 0, len(bank))

	for _, w := range bank {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || strings.IndexFunc(w, unicode.IsSpace) >= 0 {
			continue
		}
		words = append(words, w)
	}

	return words
}
