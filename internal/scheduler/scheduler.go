// Package scheduler runs callbacks after a delay and lets the caller cancel
// them before they fire.
package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a pending task. It reports whether the task was stopped before
// it ran.
type Cancel func() bool

type Scheduler interface {
	ScheduleAfter(delay time.Duration, fn func()) Cancel
}

// Timer schedules on the runtime clock.
type Timer struct{}

func NewTimer() *Timer {
	return &Timer{}
}

func (that *Timer) ScheduleAfter(delay time.Duration, fn func()) Cancel {
	t := time.AfterFunc(delay, fn)

	return t.Stop
}

type task struct {
	id      int
	at      time.Duration
	fn      func()
	stopped bool
}

// Manual is a virtual clock. Tasks only run from Advance, on the caller's goroutine.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	tasks  []*task
}

func NewManual() *Manual {
	return &Manual{}
}

func (that *Manual) ScheduleAfter(delay time.Duration, fn func()) Cancel {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.nextID++
	t := &task{id: that.nextID, at: that.now + delay, fn: fn}
	that.tasks = append(that.tasks, t)

	return func() bool {
		that.mu.Lock()
		defer that.mu.Unlock()

		if t.stopped {
			return false
		}

		t.stopped = true
		that.remove(t.id)

		return true
	}
}

// Advance moves the clock forward and runs every task that became due, in
// deadline order.
func (that *Manual) Advance(d time.Duration) {
	that.mu.Lock()
	that.now += d

	var due []*task
	remaining := that.tasks[:0]
	for _, t := range that.tasks {
		if t.at <= that.now {
			t.stopped = true
			due = append(due, t)
			continue
		}
		remaining = append(remaining, t)
	}
	that.tasks = remaining
	that.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })

	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of tasks waiting to fire.
func (that *Manual) Pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.tasks)
}

func (that *Manual) remove(id int) {
	for i, t := range that.tasks {
		if t.id == id {
			that.tasks = append(that.tasks[:i], that.tasks[i+1:]...)
			return
		}
	}
}
