// Package memory implements the memory-match card game.
//
// State is the pure board. Game wraps it for a live session: it owns the
// resolution delay that turns a mismatched pair back over, and makes sure a
// reset or teardown cancels that delay.
package memory

import (
	"sync"
	"time"

	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
	"github.com/rocketscienceinc/mindgames-backend/internal/scheduler"
)

const DefaultResolveDelay = time.Second

type Game struct {
	mu sync.Mutex

	sched    scheduler.Scheduler
	delay    time.Duration
	src      rules.Source
	onChange func(State)

	state      State
	cancel     scheduler.Cancel
	generation uint64
	closed     bool
}

// NewGame deals a board. onChange, if set, is called with the new state after
// each deferred resolution; it runs on the scheduler's goroutine.
func NewGame(sched scheduler.Scheduler, delay time.Duration, pairs []Pair, src rules.Source, onChange func(State)) (*Game, error) {
	state, err := Initialize(pairs, src)
	if err != nil {
		return nil, err
	}

	if delay <= 0 {
		delay = DefaultResolveDelay
	}

	return &Game{
		sched:    sched,
		delay:    delay,
		src:      src,
		onChange: onChange,
		state:    state,
	}, nil
}

func (that *Game) Flip(index int) (State, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return that.state, ErrClosed
	}

	next, err := that.state.Flip(index)
	if err != nil {
		return that.state, err
	}

	that.state = next

	if next.Locked {
		that.scheduleResolve()
	}

	return that.state, nil
}

// Reset deals a new board and drops any pending resolution.
func (that *Game) Reset() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stopPending()
	that.state = that.state.Restart(that.src)

	return that.state
}

// Close cancels any pending resolution. The game must not be used afterwards.
func (that *Game) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stopPending()
	that.closed = true
}

func (that *Game) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

func (that *Game) scheduleResolve() {
	that.stopPending()

	generation := that.generation
	that.cancel = that.sched.ScheduleAfter(that.delay, func() {
		that.resolve(generation)
	})
}

func (that *Game) resolve(generation uint64) {
	that.mu.Lock()

	// a reset or close happened after this task was armed
	if that.closed || generation != that.generation {
		that.mu.Unlock()
		return
	}

	that.state = that.state.Resolve()
	that.cancel = nil
	that.generation++
	state := that.state
	onChange := that.onChange

	that.mu.Unlock()

	if onChange != nil {
		onChange(state)
	}
}

func (that *Game) stopPending() {
	if that.cancel != nil {
		that.cancel()
		that.cancel = nil
	}

	that.generation++
}
