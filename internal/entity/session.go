package entity

import (
	"encoding/json"
	"time"
)

const (
	StatusOngoing   = "ongoing"
	StatusResolving = "resolving"
	StatusFinished  = "finished"

	WinnerDraw = "draw"
)

// Session is the host's record of one running game. State holds the
// engine-specific view as JSON.
type Session struct {
	ID        string          `json:"id"`
	PlayerID  string          `json:"player_id"`
	Kind      Kind            `json:"kind"`
	Status    string          `json:"status"`
	Winner    string          `json:"winner,omitempty"`
	State     json.RawMessage `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsResolving() bool {
	return that.Status == StatusResolving
}

// Snapshot is what an engine adapter reports after every transition.
type Snapshot struct {
	Status string
	Winner string
	State  any
}

// Intent is a single discrete input. Which fields apply depends on the game:
// Cell for tic-tac-toe squares and memory cards, Row/Col for checkers, Answer
// and NewRound for word scramble.
type Intent struct {
	Cell     *int    `json:"cell,omitempty"`
	Row      *int    `json:"row,omitempty"`
	Col      *int    `json:"col,omitempty"`
	Answer   *string `json:"answer,omitempty"`
	NewRound bool    `json:"new_round,omitempty"`
}

// Result is stored once per finished game or solved word.
type Result struct {
	SessionID  string    `json:"session_id"`
	PlayerID   string    `json:"player_id"`
	Kind       Kind      `json:"kind"`
	Winner     string    `json:"winner,omitempty"`
	Score      int       `json:"score"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

// Best summarises a player's results for one game.
type Best struct {
	Kind   Kind `json:"kind"`
	Best   int  `json:"best"`
	Played int  `json:"played"`
}
