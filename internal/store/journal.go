// Package store keeps a bbolt journal of visibility-state transitions. The
// journal is diagnostic history for operators; nothing in the control loop
// reads it back.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"FogRover/internal/model"
)

var bucketTransitions = []byte("transitions")

// keyLayout is RFC3339Nano with fixed-width fractions so keys sort by time.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Journal records a Status each time the visibility state changes.
type Journal struct {
	db *bbolt.DB

	mu   sync.Mutex
	last *model.VisibilityState
}

// Open opens (or creates) the journal file at path.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("[store] failed to create %s: %w", dir, err)
		}
	}
	db, err := bbolt.Open(path, 0o666, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("[store] failed to open BoltDB: %w", err)
	}
	j := &Journal{db: db}
	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketTransitions)
		if err != nil {
			return err
		}
		_, v := b.Cursor().Last()
		if v == nil {
			return nil
		}
		var st model.Status
		if err := json.Unmarshal(v, &st); err != nil {
			return err
		}
		j.last = &st.Visibility
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("[store] init journal: %w", err)
	}
	return j, nil
}

// Publish stores st when its visibility state differs from the last one
// recorded. It satisfies report.Sink.
func (j *Journal) Publish(st model.Status) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.last != nil && *j.last == st.Visibility {
		return nil
	}
	body, err := json.Marshal(st)
	if err != nil {
		return err
	}
	at := st.Time
	if at.IsZero() {
		at = time.Now()
	}
	err = j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTransitions)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := fmt.Sprintf("%s#%08d", at.UTC().Format(keyLayout), seq)
		return b.Put([]byte(key), body)
	})
	if err != nil {
		return fmt.Errorf("[store] failed to save transition: %w", err)
	}
	state := st.Visibility
	j.last = &state
	log.Printf("[store] visibility -> %s (reading %d)", st.Visibility, st.Reading)
	return nil
}

// Recent returns up to n transitions, newest first.
func (j *Journal) Recent(n int) ([]model.Status, error) {
	var out []model.Status
	err := j.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTransitions)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(out) < n; k, v = c.Prev() {
			var st model.Status
			if err := json.Unmarshal(v, &st); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			out = append(out, st)
		}
		return nil
	})
	return out, err
}

// Close closes the database.
func (j *Journal) Close() error {
	if err := j.db.Close(); err != nil {
		return fmt.Errorf("[store] error closing BoltDB: %w", err)
	}
	return nil
}
