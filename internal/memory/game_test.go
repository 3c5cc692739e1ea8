package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
	"github.com/rocketscienceinc/mindgames-backend/internal/scheduler"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newManualGame(t *testing.T, onChange func(State)) (*Game, *scheduler.Manual) {
	t.Helper()

	clock := scheduler.NewManual()
	game, err := NewGame(clock, time.Second, twoPairs, rules.Fixed(0), onChange)
	require.NoError(t, err)

	return game, clock
}

func TestGame_Flip(t *testing.T) {
	t.Run("Mismatch flips back after the delay, never before", func(t *testing.T) {
		// Given: a game on a virtual clock
		var changes []State
		game, clock := newManualGame(t, func(s State) { changes = append(changes, s) })

		// When: revealing a mismatched pair
		_, err := game.Flip(0)
		require.NoError(t, err)
		state, err := game.Flip(1)
		require.NoError(t, err)
		require.True(t, state.Locked)
		require.Equal(t, 1, clock.Pending())

		// Then: the cards stay up until the delay elapses
		clock.Advance(999 * time.Millisecond)
		assert.Equal(t, []int{0, 1}, game.State().FaceUp)
		assert.Empty(t, changes)

		_, err = game.Flip(2)
		require.ErrorIs(t, err, ErrLocked)

		clock.Advance(time.Millisecond)

		// Then: the pair is face down and the host is told
		assert.Empty(t, game.State().FaceUp)
		assert.False(t, game.State().Locked)
		require.Len(t, changes, 1)
		assert.Empty(t, changes[0].FaceUp)
	})

	t.Run("Match does not schedule anything", func(t *testing.T) {
		game, clock := newManualGame(t, nil)

		_, err := game.Flip(0)
		require.NoError(t, err)
		state, err := game.Flip(3)
		require.NoError(t, err)

		assert.ElementsMatch(t, []int{0, 3}, state.Matched)
		assert.Zero(t, clock.Pending())
	})

	t.Run("Rejected flip returns the current state", func(t *testing.T) {
		game, _ := newManualGame(t, nil)

		state, err := game.Flip(9)

		require.Error(t, err)
		assert.Equal(t, game.State(), state)
	})
}

func TestGame_Reset(t *testing.T) {
	t.Run("Reset cancels the pending resolution", func(t *testing.T) {
		// Given: a locked mismatched pair
		var changes int
		game, clock := newManualGame(t, func(State) { changes++ })
		_, err := game.Flip(0)
		require.NoError(t, err)
		_, err = game.Flip(1)
		require.NoError(t, err)

		// When: resetting before the timer fires
		state := game.Reset()

		// Then: the new board is clean and the old task never touches it
		assert.Zero(t, clock.Pending())
		assert.Empty(t, state.FaceUp)
		assert.Zero(t, state.Moves)

		_, err = game.Flip(0)
		require.NoError(t, err)

		clock.Advance(time.Hour)
		assert.Equal(t, []int{0}, game.State().FaceUp)
		assert.Zero(t, changes)
	})

	t.Run("Close cancels the pending resolution", func(t *testing.T) {
		var changes int
		game, clock := newManualGame(t, func(State) { changes++ })
		_, err := game.Flip(0)
		require.NoError(t, err)
		_, err = game.Flip(1)
		require.NoError(t, err)

		game.Close()
		clock.Advance(time.Hour)

		assert.Zero(t, clock.Pending())
		assert.Zero(t, changes)
		assert.True(t, game.State().Locked)
	})

	t.Run("Flip after Close is refused", func(t *testing.T) {
		// Given: a closed game with one card up
		game, clock := newManualGame(t, nil)
		_, err := game.Flip(0)
		require.NoError(t, err)
		game.Close()

		// When: flipping the second card
		state, err := game.Flip(1)

		// Then: the board is untouched and nothing is scheduled
		require.ErrorIs(t, err, ErrClosed)
		assert.Equal(t, []int{0}, state.FaceUp)
		assert.False(t, state.Locked)
		assert.Zero(t, clock.Pending())
	})
}

func TestGame_TimerScheduler(t *testing.T) {
	// Given: a game on the real clock with a short delay
	var wg sync.WaitGroup
	wg.Add(1)

	game, err := NewGame(scheduler.NewTimer(), 20*time.Millisecond, twoPairs, rules.Fixed(0), func(State) { wg.Done() })
	require.NoError(t, err)
	defer game.Close()

	// When: revealing a mismatched pair
	_, err = game.Flip(0)
	require.NoError(t, err)
	_, err = game.Flip(1)
	require.NoError(t, err)

	// Then: the resolution fires on its own
	wg.Wait()
	assert.False(t, game.State().Locked)
	assert.Empty(t, game.State().FaceUp)
}

func TestNewGame_DefaultDelay(t *testing.T) {
	game, err := NewGame(scheduler.NewManual(), 0, twoPairs, rules.Fixed(0), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultResolveDelay, game.delay)
}
