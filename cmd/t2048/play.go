package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/logging"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/spectate"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagSpectate string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start a local game of 2048.

Controls:
  Arrows/WASD/HJKL - Move
  N/R              - New game
  P/Esc            - Pause
  ?                - Show all keys
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

When the session ends its statistics are recorded in the session
database. With --spectate, others can watch the board live over
WebSocket at ws://<addr>/ws?session=<id>.

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --spectate :8080
  t2048 play --config ./my-t2048.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a spectator WebSocket on this address (host:port)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagSpectate != "" {
		cfg.Spectate.Address = flagSpectate
	}

	theme, err := cfg.TileTheme()
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	// The TUI owns the terminal, so logs go to the configured file
	logger, logCloser, err := logging.NewFile(cfg.Log, "t2048")
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logCloser.Close()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open session database", "error", err)
		store = nil // Continue without storage
	} else {
		defer store.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Store:     store,
		Logger:    logger,
		Player:    localPlayer(),
		SessionID: storage.NewSessionID(),
		Theme:     theme,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Spectate.Address != "" {
		opts.Hub = startSpectate(ctx, cfg.Spectate.Address, logger)
		fmt.Printf("Spectate at ws://%s/ws?session=%s\n", displayAddr(cfg.Spectate.Address), opts.SessionID)
	}

	// Returned rather than exiting so the deferred closes still run
	if err := tui.Run(t2048.New(), cfg.RuntimeConfig(width, height), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// startSpectate runs a spectator hub and its HTTP server until ctx is done.
func startSpectate(ctx context.Context, addr string, logger *log.Logger) *spectate.Hub {
	hub := spectate.NewHub(logger.WithPrefix("spectate"))
	go hub.Run(ctx)
	go func() {
		if err := hub.ListenAndServe(ctx, addr); err != nil {
			logger.Error("spectator server stopped", "error", err)
		}
	}()
	return hub
}

// displayAddr fills in localhost for addresses like ":8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
