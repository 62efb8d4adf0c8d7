package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/heat2go/internal/telemetry"
	"github.com/markusressel/heat2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	// fixed width, so lexical key order equals chronological order
	keyTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Persistence stores the telemetry history of control loops.
// Each loop has its own bucket, keyed by snapshot time.
type Persistence interface {
	Init() error

	SaveSnapshot(snapshot telemetry.Snapshot) error
	// LoadHistory returns all snapshots of the given loop recorded at or after since, oldest first
	LoadHistory(loopId string, since time.Time) ([]telemetry.Snapshot, error)
	// Prune deletes all snapshots of the given loop recorded before the given time
	Prune(loopId string, before time.Time) (int, error)
	DeleteHistory(loopId string) error

	// LoopIds returns the ids of all loops with recorded history
	LoopIds() ([]string, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func timeKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyTimeLayout))
}

// SaveSnapshot appends the given snapshot to the history of its loop
func (p persistence) SaveSnapshot(snapshot telemetry.Snapshot) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(snapshot.Id))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put(timeKey(snapshot.Time), data)
	})
}

func (p persistence) LoadHistory(loopId string, since time.Time) ([]telemetry.Snapshot, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []telemetry.Snapshot
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(loopId))
		if b == nil {
			return os.ErrNotExist
		}

		c := b.Cursor()
		for k, v := c.Seek(timeKey(since)); k != nil; k, v = c.Next() {
			var snapshot telemetry.Snapshot
			err := json.Unmarshal(v, &snapshot)
			if err != nil {
				// skip corrupt entries, they are removed by Prune eventually
				ui.Warning("Unable to unmarshal history entry %s of %s: %v", k, loopId, err)
				continue
			}
			result = append(result, snapshot)
		}
		return nil
	})

	return result, err
}

func (p persistence) Prune(loopId string, before time.Time) (int, error) {
	db, err := p.openPersistence()
	if err != nil {
		return 0, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	limit := timeKey(before)
	count := 0
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(loopId))
		if b == nil {
			// no history yet
			return nil
		}

		// deleting while iterating skips entries
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil && bytes.Compare(k, limit) < 0; k, _ = c.Next() {
			keys = append(keys, append([]byte{}, k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

func (p persistence) DeleteHistory(loopId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(loopId)) == nil {
			// no history for given loop
			return nil
		}
		return tx.DeleteBucket([]byte(loopId))
	})
}

func (p persistence) LoopIds() ([]string, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []string
	err = db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			result = append(result, string(name))
			return nil
		})
	})
	return result, err
}
