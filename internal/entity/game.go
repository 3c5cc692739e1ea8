package entity

import (
	"fmt"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
)

type Kind string

const (
	KindTicTacToe Kind = "tictactoe"
	KindCheckers  Kind = "checkers"
	KindMemory    Kind = "memory"
	KindScramble  Kind = "scramble"
)

// GameInfo is one entry of the games list shown to the player.
type GameInfo struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

var Catalog = []GameInfo{
	{Kind: KindTicTacToe, Name: "Tic Tac Toe", Icon: "grid-outline", Description: "Classic X and O game"},
	{Kind: KindMemory, Name: "Memory Match", Icon: "duplicate-outline", Description: "Test your memory by matching pairs"},
	{Kind: KindScramble, Name: "Word Scramble", Icon: "text-outline", Description: "Unscramble the words"},
	{Kind: KindCheckers, Name: "Checkers", Icon: "apps-outline", Description: "Jump and capture every opposing piece"},
}

func ParseKind(s string) (Kind, error) {
	for _, info := range Catalog {
		if string(info.Kind) == s {
			return info.Kind, nil
		}
	}

	return "", fmt.Errorf("%w: %q", apperror.ErrUnknownGame, s)
}
