package scramble

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
)

func sortedLetters(s string) string {
	letters := strings.Split(s, "")
	sort.Strings(letters)

	return strings.Join(letters, "")
}

func TestStart(t *testing.T) {
	t.Run("Picks a word from the bank and scrambles it", func(t *testing.T) {
		// Given: the default bank
		// When: starting a session
		game, err := Start(DefaultWords, rules.NewSource(3))

		// Then: the answer comes from the bank and scores are zero
		require.NoError(t, err)
		assert.Contains(t, DefaultWords, game.Answer)
		assert.NotEqual(t, game.Answer, game.Scrambled)
		assert.Zero(t, game.Score)
		assert.Zero(t, game.Best)
		assert.False(t, game.Solved)
		assert.False(t, game.Failed)
	})

	t.Run("Words are upper-cased and blanks dropped", func(t *testing.T) {
		game, err := Start([]string{"  ", "calm", "two words"}, rules.Fixed(0))

		require.NoError(t, err)
		assert.Equal(t, "CALM", game.Answer)
	})

	t.Run("Empty bank", func(t *testing.T) {
		_, err := Start(nil, rules.Fixed(0))
		require.ErrorIs(t, err, ErrEmptyWordBank)

		_, err = Start([]string{" ", ""}, rules.Fixed(0))
		require.ErrorIs(t, err, ErrEmptyWordBank)
	})
}

func TestScramble(t *testing.T) {
	t.Run("Letter multiset is preserved", func(t *testing.T) {
		for seed := range uint64(100) {
			src := rules.NewSource(seed)
			for _, word := range DefaultWords {
				scrambled := Scramble(word, src)

				require.Equal(t, sortedLetters(word), sortedLetters(scrambled), "seed %d word %s", seed, word)
			}
		}
	})

	t.Run("Identity shuffle is rotated", func(t *testing.T) {
		// Given: a source that makes Fisher-Yates swap each position with itself
		src := rules.Fixed(3, 2, 1)

		// When: scrambling a four-letter word
		scrambled := Scramble("CALM", src)

		// Then: the result is rotated rather than identical
		assert.Equal(t, "ALMC", scrambled)
	})

	t.Run("Scramble never returns the word when it has two distinct letters", func(t *testing.T) {
		for seed := range uint64(200) {
			src := rules.NewSource(seed)

			require.NotEqual(t, "AB", Scramble("AB", src))
			require.NotEqual(t, "ABAB", Scramble("ABAB", src))
		}
	})

	t.Run("Single letter and uniform words", func(t *testing.T) {
		assert.Equal(t, "A", Scramble("A", rules.Fixed(0)))
		assert.Equal(t, "OOO", Scramble("OOO", rules.Fixed(0)))
	})
}

func TestGame_Submit(t *testing.T) {
	t.Run("Correct answer in any case scores one", func(t *testing.T) {
		for _, answer := range []string{"HARMONY", "harmony", "HaRmOnY"} {
			// Given: a round for HARMONY
			game := Game{Answer: "HARMONY", Scrambled: "YNOMRAH", Score: 2, Best: 5}

			// When: submitting the word
			correct, next := game.Submit(answer)

			// Then: score goes up by exactly one and best is kept
			require.True(t, correct, answer)
			assert.Equal(t, 3, next.Score)
			assert.Equal(t, 5, next.Best)
			assert.True(t, next.Solved)
			assert.False(t, next.Failed)
		}
	})

	t.Run("Best follows score", func(t *testing.T) {
		game := Game{Answer: "CALM", Score: 4, Best: 4}

		correct, next := game.Submit("calm")

		require.True(t, correct)
		assert.Equal(t, 5, next.Best)
	})

	t.Run("Wrong permutation leaves the score unchanged", func(t *testing.T) {
		// Given: a round for HARMONY
		game := Game{Answer: "HARMONY", Scrambled: "YNOMRAH", Score: 2, Best: 2}

		// When: submitting a permutation of the letters
		correct, next := game.Submit("HARMYNO")

		// Then: only the failure signal changes
		require.False(t, correct)
		assert.True(t, next.Failed)
		next.Failed = false
		assert.Equal(t, game, next)
	})

	t.Run("Solved round ignores further answers", func(t *testing.T) {
		game := Game{Answer: "CALM", Scrambled: "MLAC"}
		correct, game := game.Submit("CALM")
		require.True(t, correct)

		correct, next := game.Submit("CALM")

		require.False(t, correct)
		assert.Equal(t, game, next)
		assert.Equal(t, 1, next.Score)
	})

	t.Run("Failed signal clears on the next correct answer", func(t *testing.T) {
		game := Game{Answer: "CALM", Scrambled: "MLAC"}
		_, game = game.Submit("CLAM")
		require.True(t, game.Failed)

		correct, game := game.Submit("calm")

		require.True(t, correct)
		assert.False(t, game.Failed)
	})
}

func TestGame_NewRound(t *testing.T) {
	// Given: a session with a solved round
	game, err := Start(DefaultWords, rules.NewSource(1))
	require.NoError(t, err)
	_, game = game.Submit(game.Answer)
	require.Equal(t, 1, game.Score)

	// When: moving to the next round
	next, err := game.NewRound(DefaultWords, rules.NewSource(2))

	// Then: the scores carry over and the round flags reset
	require.NoError(t, err)
	assert.Equal(t, 1, next.Score)
	assert.Equal(t, 1, next.Best)
	assert.False(t, next.Solved)
	assert.False(t, next.Failed)
	assert.Equal(t, sortedLetters(next.Answer), sortedLetters(next.Scrambled))

	// When: the bank is empty
	same, err := next.NewRound(nil, rules.NewSource(3))

	// Then: the game is unchanged
	require.ErrorIs(t, err, ErrEmptyWordBank)
	assert.Equal(t, next, same)
}
