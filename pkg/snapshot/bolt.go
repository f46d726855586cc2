package snapshot

import (
	"context"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vango-dev/weft/internal/errors"
)

const bucketSnapshots = "snapshots"

// Bolt stores snapshots in a bbolt database file. Keys are ordered by the
// database, so List needs no sorting.
type Bolt struct {
	db *bolt.DB
}

var _ Store = (*Bolt)(nil)

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.New("E100").WithDetail(path).Wrap(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.New("E100").WithDetail(path).Wrap(err)
	}
	return &Bolt{db: db}, nil
}

// Path returns the database file.
func (b *Bolt) Path() string { return b.db.Path() }

// Put implements Store.
func (b *Bolt) Put(_ context.Context, s Snapshot) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Put([]byte(s.Key()), data)
	})
	if err != nil {
		return errors.New("E101").WithDetail(s.Key()).Wrap(err)
	}
	return nil
}

// Get implements Store.
func (b *Bolt) Get(_ context.Context, key string) (Snapshot, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketSnapshots)).Get([]byte(key)); v != nil {
			// v is only valid inside the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, errors.New("E103").WithDetail(key).Wrap(err)
	}
	if data == nil {
		return Snapshot{}, notFound(key)
	}
	return decode(key, data)
}

// List implements Store.
func (b *Bolt) List(context.Context) ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketSnapshots)).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, errors.New("E103").Wrap(err)
	}
	return keys, nil
}

// Close implements Store.
func (b *Bolt) Close() error {
	return b.db.Close()
}
