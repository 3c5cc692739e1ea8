package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

const writeWait = 10 * time.Second

type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player  *entity.Player  `json:"player,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Intent  *entity.Intent  `json:"intent,omitempty"`
	Session *entity.Session `json:"session,omitempty"`
	Scores  []entity.Best   `json:"scores,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// client serialises writes: gorilla allows one concurrent writer per connection
// and resolution pushes arrive from timer goroutines.
type client struct {
	conn *gorilla.Conn
	mu   sync.Mutex
}

func (that *client) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendError(action, errorMsg string) error {
	if err := that.send(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
