package spectate

import (
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Frame is the JSON message pushed to spectators.
type Frame struct {
	SessionID string                      `json:"session_id"`
	Version   uint64                      `json:"version"`
	Event     string                      `json:"event"` // "snapshot", "new_game" or "move"
	Direction string                      `json:"direction"`
	Changed   bool                        `json:"changed"`
	Merges    int                         `json:"merges"`
	Board     [t2048.Size][t2048.Size]int `json:"board"` // [row][col], 0 = empty
}

// NewFrame builds a frame from the engine's current board and the event
// that produced it.
func NewFrame(sessionID string, e *t2048.Engine, ev t2048.Event) *Frame {
	kind := "move"
	if ev.Kind == t2048.EventNewGame {
		kind = "new_game"
	}
	return &Frame{
		SessionID: sessionID,
		Version:   ev.Version,
		Event:     kind,
		Direction: e.LastGestureDirection().String(),
		Changed:   ev.Move.Changed,
		Merges:    ev.Move.Merges,
		Board:     e.Grid().Values(),
	}
}

// Attach publishes every notification of e under sessionID and marks the
// session live. The current board is published immediately.
// The returned function detaches the engine and disconnects its spectators.
func (h *Hub) Attach(e *t2048.Engine, sessionID string) (detach func()) {
	h.setActive(sessionID, true)

	h.Publish(&Frame{
		SessionID: sessionID,
		Version:   e.Version(),
		Event:     "snapshot",
		Direction: e.LastGestureDirection().String(),
		Board:     e.Grid().Values(),
	})

	unsubscribe := e.Subscribe(func(ev t2048.Event) {
		h.Publish(NewFrame(sessionID, e, ev))
	})

	return func() {
		unsubscribe()
		h.setActive(sessionID, false)
		h.end(sessionID)
	}
}
