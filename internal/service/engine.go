package service

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
	"github.com/rocketscienceinc/mindgames-backend/internal/memory"
	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
	"github.com/rocketscienceinc/mindgames-backend/internal/scheduler"
)

var ErrMissingIntent = fmt.Errorf("%w: intent is missing a field", apperror.ErrInvalidMove)

// Engine adapts one rule engine to the session manager.
type Engine interface {
	Kind() entity.Kind

	// Apply feeds one intent to the engine. A rejected intent leaves the
	// state as it was.
	Apply(intent entity.Intent) error
	Reset() error

	Snapshot() entity.Snapshot
	// Result is nil until the game is over.
	Result() *entity.Result

	Close()
}

type Deps struct {
	Scheduler    scheduler.Scheduler
	ResolveDelay time.Duration
	Pairs        []memory.Pair
	Words        []string
	Sources      rules.SourceFactory
}

// NewEngine builds a fresh game of the given kind. key seeds the random
// source; onAsync is called after a state change that was not caused by Apply.
func NewEngine(kind entity.Kind, key string, deps Deps, onAsync func()) (Engine, error) {
	sources := deps.Sources
	if sources == nil {
		sources = rules.NewSourceFactory(0, "")
	}

	switch kind {
	case entity.KindTicTacToe:
		return newTicTacToeEngine(), nil
	case entity.KindCheckers:
		return newCheckersEngine(), nil
	case entity.KindMemory:
		return newMemoryEngine(deps, sources(key), onAsync)
	case entity.KindScramble:
		return newScrambleEngine(deps.Words, sources(key))
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGame, kind)
	}
}
