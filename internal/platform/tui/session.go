package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// sessionLog collects statistics for one play session and writes them to
// the store when the session ends. It also attaches the engine to the
// spectator hub for the session's lifetime.
type sessionLog struct {
	store  *storage.Store
	logger *log.Logger
	record storage.Session
	stats  t2048.Stats

	unsubscribe func()
	detach      func()
	once        sync.Once
}

func newSessionLog(e *t2048.Engine, opts Options, seed int64) *sessionLog {
	s := &sessionLog{
		store:  opts.Store,
		logger: opts.Logger,
		record: storage.Session{
			ID:        opts.SessionID,
			Player:    opts.Player,
			Seed:      seed,
			StartedAt: time.Now(),
		},
	}
	if s.record.ID == "" {
		s.record.ID = storage.NewSessionID()
	}
	s.unsubscribe = s.stats.Observe(e)

	if opts.Hub != nil {
		s.detach = opts.Hub.Attach(e, s.record.ID)
	}
	return s
}

// ID returns the session identifier used for storage and spectating.
func (s *sessionLog) ID() string {
	return s.record.ID
}

// Stats returns the totals so far.
func (s *sessionLog) Stats() t2048.Stats {
	return s.stats
}

// Close stops observing the engine and saves the session. It is safe to
// call more than once; only the first call has an effect. Must not run
// concurrently with engine calls.
func (s *sessionLog) Close() {
	s.once.Do(func() {
		s.unsubscribe()
		if s.detach != nil {
			s.detach()
		}

		s.record.EndedAt = time.Now()
		s.record.Games = s.stats.Games
		s.record.Moves = s.stats.Moves
		s.record.ChangedMoves = s.stats.ChangedMoves
		s.record.Merges = s.stats.Merges
		s.record.TilesSpawned = s.stats.TilesSpawned
		s.record.MaxTile = s.stats.MaxTile

		if s.store == nil || s.stats.Moves == 0 {
			return
		}

		// Best-effort save, the player is leaving regardless
		if _, err := s.store.SaveSession(s.record); err != nil {
			s.logger.Warn("could not save session", "session", s.record.ID, "error", err)
			return
		}
		s.logger.Info("session recorded",
			"session", s.record.ID,
			"player", s.record.Player,
			"moves", s.record.Moves,
			"max_tile", s.record.MaxTile,
		)
	})
}
