package telemetry

import (
	"context"
	"time"

	"github.com/markusressel/heat2go/internal/ui"
)

// Sink receives snapshots from the Reporter
type Sink interface {
	Name() string
	Report(snapshot Snapshot) error
}

// Reporter periodically forwards the latest snapshots of the store to all sinks.
// Sink errors are logged and never stop the reporter.
type Reporter struct {
	store    *Store
	interval time.Duration
	sinks    []Sink

	// time of the last reported snapshot per loop
	lastReported map[string]time.Time
}

func NewReporter(store *Store, interval time.Duration, sinks ...Sink) *Reporter {
	return &Reporter{
		store:        store,
		interval:     interval,
		sinks:        sinks,
		lastReported: map[string]time.Time{},
	}
}

func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.ReportOnce()
		}
	}
}

// ReportOnce forwards every snapshot that has changed since the last call.
// Returns the number of forwarded snapshots.
func (r *Reporter) ReportOnce() int {
	count := 0
	for _, snapshot := range r.store.All() {
		if last, ok := r.lastReported[snapshot.Id]; ok && !snapshot.Time.After(last) {
			continue
		}
		r.lastReported[snapshot.Id] = snapshot.Time
		count++

		for _, sink := range r.sinks {
			if err := sink.Report(snapshot); err != nil {
				ui.Warning("Error reporting telemetry of %s to %s: %v", snapshot.Id, sink.Name(), err)
			}
		}
	}
	return count
}
