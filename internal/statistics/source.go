package statistics

import "github.com/markusressel/heat2go/internal/telemetry"

// SnapshotSource provides the latest snapshot of each control loop
type SnapshotSource interface {
	All() []telemetry.Snapshot
}
