package service

import (
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
	"github.com/rocketscienceinc/mindgames-backend/internal/rules"
	"github.com/rocketscienceinc/mindgames-backend/internal/scramble"
)

type scrambleView struct {
	scramble.Game
	// Answer is only revealed once the round is solved.
	Answer string `json:"answer,omitempty"`
}

type scrambleEngine struct {
	words []string
	src   rules.Source
	game  scramble.Game
}

func newScrambleEngine(words []string, src rules.Source) (*scrambleEngine, error) {
	if len(words) == 0 {
		words = scramble.DefaultWords
	}

	game, err := scramble.Start(words, src)
	if err != nil {
		return nil, err
	}

	return &scrambleEngine{words: words, src: src, game: game}, nil
}

func (that *scrambleEngine) Kind() entity.Kind {
	return entity.KindScramble
}

func (that *scrambleEngine) Apply(intent entity.Intent) error {
	if intent.NewRound {
		next, err := that.game.NewRound(that.words, that.src)
		if err != nil {
			return err
		}

		that.game = next

		return nil
	}

	if intent.Answer == nil {
		return ErrMissingIntent
	}

	_, that.game = that.game.Submit(*intent.Answer)

	return nil
}

func (that *scrambleEngine) Reset() error {
	game, err := scramble.Start(that.words, that.src)
	if err != nil {
		return err
	}

	game.Best = that.game.Best
	that.game = game

	return nil
}

func (that *scrambleEngine) Snapshot() entity.Snapshot {
	view := scrambleView{Game: that.game}

	snapshot := entity.Snapshot{
		Status: entity.StatusOngoing,
		State:  view,
	}

	if that.game.Solved {
		view.Answer = that.game.Answer
		snapshot.State = view
		snapshot.Status = entity.StatusFinished
	}

	return snapshot
}

func (that *scrambleEngine) Result() *entity.Result {
	if !that.game.Solved {
		return nil
	}

	return &entity.Result{
		Kind:  entity.KindScramble,
		Score: that.game.Score,
	}
}

func (that *scrambleEngine) Close() {}
