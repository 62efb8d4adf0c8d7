package telemetry

import (
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Store holds the latest Snapshot of each control loop
type Store struct {
	snapshots cmap.ConcurrentMap[string, Snapshot]
}

func NewStore() *Store {
	return &Store{
		snapshots: cmap.New[Snapshot](),
	}
}

func (s *Store) Put(snapshot Snapshot) {
	s.snapshots.Set(snapshot.Id, snapshot)
}

func (s *Store) Get(id string) (Snapshot, bool) {
	return s.snapshots.Get(id)
}

// All returns the latest snapshot of all control loops, ordered by id
func (s *Store) All() []Snapshot {
	result := make([]Snapshot, 0, s.snapshots.Count())
	for _, snapshot := range s.snapshots.Items() {
		result = append(result, snapshot)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Id < result[j].Id
	})
	return result
}
