package service

import (
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
	"github.com/rocketscienceinc/mindgames-backend/internal/tictactoe"
)

type ticTacToeView struct {
	Board  [9]tictactoe.Mark `json:"board"`
	Next   tictactoe.Mark    `json:"next"`
	Winner tictactoe.Mark    `json:"winner"`
	Draw   bool              `json:"draw"`
}

type ticTacToeEngine struct {
	game tictactoe.Game
}

func newTicTacToeEngine() *ticTacToeEngine {
	return &ticTacToeEngine{game: tictactoe.New()}
}

func (that *ticTacToeEngine) Kind() entity.Kind {
	return entity.KindTicTacToe
}

func (that *ticTacToeEngine) Apply(intent entity.Intent) error {
	if intent.Cell == nil {
		return ErrMissingIntent
	}

	next, err := that.game.Play(*intent.Cell)
	if err != nil {
		return err
	}

	that.game = next

	return nil
}

func (that *ticTacToeEngine) Reset() error {
	that.game = tictactoe.New()
	return nil
}

func (that *ticTacToeEngine) Snapshot() entity.Snapshot {
	result := that.game.Evaluate()

	snapshot := entity.Snapshot{
		Status: entity.StatusOngoing,
		Winner: string(result.Winner),
		State: ticTacToeView{
			Board:  that.game.Board,
			Next:   that.game.Next,
			Winner: result.Winner,
			Draw:   result.Draw,
		},
	}

	if result.IsTerminal() {
		snapshot.Status = entity.StatusFinished
	}

	if result.Draw {
		snapshot.Winner = entity.WinnerDraw
	}

	return snapshot
}

func (that *ticTacToeEngine) Result() *entity.Result {
	result := that.game.Evaluate()
	if !result.IsTerminal() {
		return nil
	}

	winner := string(result.Winner)
	if result.Draw {
		winner = entity.WinnerDraw
	}

	return &entity.Result{
		Kind:   entity.KindTicTacToe,
		Winner: winner,
		Moves:  that.game.Count(tictactoe.X) + that.game.Count(tictactoe.O),
	}
}

func (that *ticTacToeEngine) Close() {}
