package t2048

// Stats accumulates play statistics from engine notifications.
type Stats struct {
	Games        int // new games started
	Moves        int // every Move call
	ChangedMoves int // moves that changed the board
	Merges       int
	TilesSpawned int
	MaxTile      int
}

// Observe subscribes s to e and returns the unsubscribe function.
func (s *Stats) Observe(e *Engine) (unsubscribe func()) {
	return e.Subscribe(func(ev Event) {
		s.Record(e, ev)
	})
}

// Record folds one notification from e into the totals.
func (s *Stats) Record(e *Engine, ev Event) {
	switch ev.Kind {
	case EventNewGame:
		s.Games++
	case EventMove:
		s.Moves++
		if ev.Move.Changed {
			s.ChangedMoves++
		}
		s.Merges += ev.Move.Merges
	}
	s.TilesSpawned += len(ev.Move.Spawned)
	if v := e.Grid().MaxValue(); v > s.MaxTile {
		s.MaxTile = v
	}
}
