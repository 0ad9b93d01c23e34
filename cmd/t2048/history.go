package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagPlayer string
	flagLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded play sessions",
	Long: `Display recently finished sessions from the session database.

Examples:
  t2048 history
  t2048 history --limit 25
  t2048 history --player alice`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show sessions of this player")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening session database: %w", err)
	}
	defer store.Close()

	var sessions []storage.Session
	if flagPlayer != "" {
		sessions, err = store.SessionsByPlayer(flagPlayer)
		if len(sessions) > flagLimit && flagLimit > 0 {
			sessions = sessions[:flagLimit]
		}
	} else {
		sessions, err = store.RecentSessions(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	fmt.Println("Recent sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to record the first one!")
		return nil
	}

	printSessions(os.Stdout, sessions)
	return nil
}

func printSessions(w io.Writer, sessions []storage.Session) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Date\tPlayer\tGames\tMoves\tMerges\tBest\tTime\tSession")
	fmt.Fprintln(tw, "  ----\t------\t-----\t-----\t------\t----\t----\t-------")
	for _, s := range sessions {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			s.EndedAt.Format("2006-01-02 15:04"),
			s.Player,
			s.Games,
			s.ChangedMoves,
			s.Merges,
			s.MaxTile,
			s.Duration().Round(time.Second),
			shortID(s.ID),
		)
	}
	tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
