package service

import (
	"github.com/rocketscienceinc/mindgames-backend/internal/checkers"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

type checkersView struct {
	checkers.Game
	Pieces map[string]int `json:"pieces"`
}

type checkersEngine struct {
	game  checkers.Game
	moves int
}

func newCheckersEngine() *checkersEngine {
	return &checkersEngine{game: checkers.New()}
}

func (that *checkersEngine) Kind() entity.Kind {
	return entity.KindCheckers
}

func (that *checkersEngine) Apply(intent entity.Intent) error {
	if intent.Row == nil || intent.Col == nil {
		return ErrMissingIntent
	}

	next, err := that.game.SelectOrMove(*intent.Row, *intent.Col)
	// a rejected target still drops the selection
	that.game = next
	if err != nil {
		return err
	}

	if next.Selected == nil {
		that.moves++
	}

	return nil
}

func (that *checkersEngine) Reset() error {
	that.game = checkers.New()
	that.moves = 0

	return nil
}

func (that *checkersEngine) Snapshot() entity.Snapshot {
	snapshot := entity.Snapshot{
		Status: entity.StatusOngoing,
		Winner: pieceName(that.game.Winner),
		State: checkersView{
			Game: that.game,
			Pieces: map[string]int{
				pieceName(checkers.Player1): that.game.Count(checkers.Player1),
				pieceName(checkers.Player2): that.game.Count(checkers.Player2),
			},
		},
	}

	if that.game.Winner != checkers.None {
		snapshot.Status = entity.StatusFinished
	}

	return snapshot
}

func (that *checkersEngine) Result() *entity.Result {
	if that.game.Winner == checkers.None {
		return nil
	}

	return &entity.Result{
		Kind:   entity.KindCheckers,
		Winner: pieceName(that.game.Winner),
		Moves:  that.moves,
	}
}

func (that *checkersEngine) Close() {}

func pieceName(p checkers.Piece) string {
	switch p {
	case checkers.Player1:
		return "player1"
	case checkers.Player2:
		return "player2"
	default:
		return ""
	}
}
