package main

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func TestParseDirections(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []t2048.Direction
		wantErr bool
	}{
		{"names", []string{"left", "UP"}, []t2048.Direction{t2048.DirLeft, t2048.DirUp}, false},
		{"letters", []string{"d", "r"}, []t2048.Direction{t2048.DirDown, t2048.DirRight}, false},
		{"run", []string{"lurd"}, []t2048.Direction{t2048.DirLeft, t2048.DirUp, t2048.DirRight, t2048.DirDown}, false},
		{"bad letter", []string{"lx"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDirections(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDirections(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if !tt.wantErr && !slices.Equal(got, tt.want) {
				t.Errorf("parseDirections(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	dirs := []t2048.Direction{t2048.DirLeft, t2048.DirUp, t2048.DirRight, t2048.DirDown, t2048.DirLeft}

	calls := 0
	a, statsA := replay(42, dirs, func(int, t2048.Direction, *t2048.Game) { calls++ })
	b, _ := replay(42, dirs, nil)

	if calls != len(dirs) {
		t.Errorf("callback ran %d times, want %d", calls, len(dirs))
	}
	if a.Board != b.Board || a.IDs != b.IDs {
		t.Errorf("same seed and moves should give the same board:\n%v\nvs\n%v", a.Board, b.Board)
	}
	if statsA.Moves != len(dirs) || statsA.Games != 1 {
		t.Errorf("stats = %+v, want %d moves in 1 game", statsA, len(dirs))
	}
	if a.Direction != "left" {
		t.Errorf("Direction = %s, want left", a.Direction)
	}
}

func TestPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	printBoard(&buf, [t2048.Size][t2048.Size]int{{2, 0, 0, 2048}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != t2048.Size {
		t.Fatalf("printed %d lines, want %d", len(lines), t2048.Size)
	}
	if lines[0] != "    2     .     .  2048" {
		t.Errorf("first row = %q", lines[0])
	}
	if strings.Trim(lines[1], " .") != "" {
		t.Errorf("empty row = %q", lines[1])
	}
}

func TestSSHHint(t *testing.T) {
	tests := map[string]string{
		":23234":         "localhost -p 23234",
		"example.com:22": "example.com",
		"0.0.0.0:2222":   "0.0.0.0 -p 2222",
	}
	for addr, want := range tests {
		if got := sshHint(addr); got != want {
			t.Errorf("sshHint(%q) = %q, want %q", addr, got, want)
		}
	}
}
