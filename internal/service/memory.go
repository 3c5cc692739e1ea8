package service

import (
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
	"github.com/rocketscienceinc/mindgames-backend/internal/memory"
	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
)

type memoryCardView struct {
	ID      int    `json:"id"`
	Icon    string `json:"icon,omitempty"`
	FaceUp  bool   `json:"face_up"`
	Matched bool   `json:"matched"`
}

type memoryView struct {
	Cards     []memoryCardView `json:"cards"`
	Moves     int              `json:"moves"`
	Locked    bool             `json:"locked"`
	BestMoves int              `json:"best_moves"`
	Complete  bool             `json:"complete"`
}

type memoryEngine struct {
	game *memory.Game
}

func newMemoryEngine(deps Deps, src rules.Source, onAsync func()) (*memoryEngine, error) {
	pairs := deps.Pairs
	if len(pairs) == 0 {
		pairs = memory.DefaultPairs
	}

	onChange := func(memory.State) {
		if onAsync != nil {
			onAsync()
		}
	}

	game, err := memory.NewGame(deps.Scheduler, deps.ResolveDelay, pairs, src, onChange)
	if err != nil {
		return nil, err
	}

	return &memoryEngine{game: game}, nil
}

func (that *memoryEngine) Kind() entity.Kind {
	return entity.KindMemory
}

func (that *memoryEngine) Apply(intent entity.Intent) error {
	if intent.Cell == nil {
		return ErrMissingIntent
	}

	_, err := that.game.Flip(*intent.Cell)

	return err
}

func (that *memoryEngine) Reset() error {
	that.game.Reset()
	return nil
}

func (that *memoryEngine) Snapshot() entity.Snapshot {
	state := that.game.State()

	snapshot := entity.Snapshot{
		Status: entity.StatusOngoing,
		State:  maskDeck(state),
	}

	switch {
	case state.IsComplete():
		snapshot.Status = entity.StatusFinished
	case state.Locked:
		snapshot.Status = entity.StatusResolving
	}

	return snapshot
}

func (that *memoryEngine) Result() *entity.Result {
	state := that.game.State()
	if !state.IsComplete() {
		return nil
	}

	return &entity.Result{
		Kind:  entity.KindMemory,
		Score: len(state.Deck) / 2,
		Moves: state.Moves,
	}
}

func (that *memoryEngine) Close() {
	that.game.Close()
}

// maskDeck hides the face of every card the player has not turned over.
func maskDeck(state memory.State) memoryView {
	view := memoryView{
		Cards:     make([]memoryCardView, len(state.Deck)),
		Moves:     state.Moves,
		Locked:    state.Locked,
		BestMoves: state.BestMoves,
		Complete:  state.IsComplete(),
	}

	for i, card := range state.Deck {
		view.Cards[i] = memoryCardView{ID: card.ID}
	}

	for _, i := range state.FaceUp {
		view.Cards[i].FaceUp = true
		view.Cards[i].Icon = state.Deck[i].Icon
	}

	for _, i := range state.Matched {
		view.Cards[i].Matched = true
		view.Cards[i].Icon = state.Deck[i].Icon
	}

	return view
}
