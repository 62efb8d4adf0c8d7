package persistence

import (
	"time"

	"github.com/markusressel/heat2go/internal/telemetry"
)

// HistoryRecorder is a telemetry.Sink that writes every reported snapshot
// to persistence and drops entries older than maxAge.
type HistoryRecorder struct {
	persistence Persistence
	maxAge      time.Duration
}

func NewHistoryRecorder(persistence Persistence, maxAge time.Duration) *HistoryRecorder {
	return &HistoryRecorder{
		persistence: persistence,
		maxAge:      maxAge,
	}
}

func (r *HistoryRecorder) Name() string {
	return "history"
}

func (r *HistoryRecorder) Report(snapshot telemetry.Snapshot) error {
	err := r.persistence.SaveSnapshot(snapshot)
	if err != nil {
		return err
	}
	if r.maxAge <= 0 {
		return nil
	}
	_, err = r.persistence.Prune(snapshot.Id, snapshot.Time.Add(-r.maxAge))
	return err
}
