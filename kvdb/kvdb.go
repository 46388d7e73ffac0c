// Package kvdb wraps bbolt behind a small transactional interface so that
// higher layers (swapdriver's Store) depend on a narrow contract instead
// of the bbolt API directly.
package kvdb

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket is a named, flat keyspace within a Backend.
type Bucket interface {
	// Put stores value under key, overwriting any existing value.
	Put(key, value []byte) error

	// Get returns the value stored under key, or nil if absent.
	Get(key []byte) []byte

	// Delete removes key. It is not an error to delete an absent key.
	Delete(key []byte) error

	// ForEach calls fn for every key/value pair in the bucket. fn must
	// not mutate the bucket.
	ForEach(fn func(key, value []byte) error) error
}

// ReadTx is a read-only view of a Backend's buckets.
type ReadTx interface {
	// Bucket returns the named bucket, or nil if it does not exist.
	Bucket(name []byte) Bucket
}

// ReadWriteTx additionally allows bucket creation.
type ReadWriteTx interface {
	ReadTx

	// CreateBucketIfNotExists returns the named bucket, creating it
	// first if necessary.
	CreateBucketIfNotExists(name []byte) (Bucket, error)
}

// Backend is the minimal transactional key/value store contract required
// by swapdriver's bbolt-backed Store implementation.
type Backend interface {
	// View runs fn within a read-only transaction.
	View(fn func(tx ReadTx) error) error

	// Update runs fn within a read-write transaction. The transaction
	// commits iff fn returns nil.
	Update(fn func(tx ReadWriteTx) error) error

	// Close releases the underlying file handle.
	Close() error
}

type boltBackend struct {
	db *bolt.DB
}

// Open opens (creating if necessary) a bbolt-backed Backend at path.
func Open(path string) (Backend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	return &boltBackend{db: db}, nil
}

func (b *boltBackend) View(fn func(tx ReadTx) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return fn(boltReadTx{tx})
	})
}

func (b *boltBackend) Update(fn func(tx ReadWriteTx) error) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return fn(boltReadWriteTx{tx})
	})
}

func (b *boltBackend) Close() error {
	return b.db.Close()
}

type boltReadTx struct {
	tx *bolt.Tx
}

func (t boltReadTx) Bucket(name []byte) Bucket {
	bkt := t.tx.Bucket(name)
	if bkt == nil {
		return nil
	}
	return boltBucket{bkt}
}

type boltReadWriteTx struct {
	tx *bolt.Tx
}

func (t boltReadWriteTx) Bucket(name []byte) Bucket {
	bkt := t.tx.Bucket(name)
	if bkt == nil {
		return nil
	}
	return boltBucket{bkt}
}

func (t boltReadWriteTx) CreateBucketIfNotExists(name []byte) (Bucket, error) {
	bkt, err := t.tx.CreateBucketIfNotExists(name)
	if err != nil {
		return nil, err
	}
	return boltBucket{bkt}, nil
}

type boltBucket struct {
	b *bolt.Bucket
}

func (b boltBucket) Put(key, value []byte) error {
	return b.b.Put(key, value)
}

func (b boltBucket) Get(key []byte) []byte {
	return b.b.Get(key)
}

func (b boltBucket) Delete(key []byte) error {
	return b.b.Delete(key)
}

func (b boltBucket) ForEach(fn func(key, value []byte) error) error {
	return b.b.ForEach(fn)
}
