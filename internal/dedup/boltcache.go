package dedup

import (
	"fmt"
	"strconv"
	"time"

	"github.com/boltdb/bolt"

	"github.com/spendsignal/spendsignal/internal/common"
)

var processedBucket = []byte("processed_names")

// BoltNameCache is a NameCache variant persisted in a bolt database, so the
// 24 h suppression of already-processed expense names survives process
// restarts. Bolt serializes writers, which gives the single-writer-per-key
// semantics the dedup state needs.
type BoltNameCache struct {
	db    *bolt.DB
	clock common.Clock
	ttl   time.Duration
}

// OpenBoltNameCache opens (or creates) the cache database at path.
func OpenBoltNameCache(path string, clock common.Clock, ttl time.Duration) (*BoltNameCache, error) {
	if ttl <= 0 {
		ttl = DefaultNameCacheTTL
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open name cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, berr := tx.CreateBucketIfNotExists(processedBucket)
		return berr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create name cache bucket: %w", err)
	}

	return &BoltNameCache{db: db, clock: clock, ttl: ttl}, nil
}

// MarkIfNew marks name as processed and reports whether it was new. Expired
// entries are swept on each call.
func (c *BoltNameCache) MarkIfNew(name string) bool {
	now := c.clock.Now()
	fresh := false

	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(processedBucket)

		cur := b.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			at, perr := strconv.ParseInt(string(v), 10, 64)
			if perr != nil || now.Sub(time.Unix(0, at)) > c.ttl {
				if derr := cur.Delete(); derr != nil {
					return derr
				}
			}
		}

		if b.Get([]byte(name)) != nil {
			return nil
		}
		fresh = true
		return b.Put([]byte(name), []byte(strconv.FormatInt(now.UnixNano(), 10)))
	})
	if err != nil {
		// Treat a failed write as "seen" so a flaky disk cannot cause
		// duplicate candidates.
		return false
	}

	return fresh
}

// Close closes the underlying database.
func (c *BoltNameCache) Close() error {
	return c.db.Close()
}
