// Package tui runs 2048 in a terminal with Bubble Tea, locally or over SSH.
// It handles the tick loop, key bindings, session recording and rendering.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate is used when a session starts without a usable rate.
const defaultTickRate = 60

// TickMsg drives one Game.Step; queued keys are applied on the next one.
type TickMsg time.Time

// tickInterval converts ticks per second to the delay between ticks.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
