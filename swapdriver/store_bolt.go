package swapdriver

import "github.com/lightninglabs/xmrswap/kvdb"

var swapBucket = []byte("swap-state")

// BoltStore persists swap state in a single bbolt bucket, keyed by
// swap ID. It is the default store for a single-node swapd instance;
// PostgresStore is used when multiple swapd instances share state.
type BoltStore struct {
	db kvdb.Backend
}

// NewBoltStore opens (creating if necessary) the swap-state bucket in
// db.
func NewBoltStore(db kvdb.Backend) (*BoltStore, error) {
	err := db.Update(func(tx kvdb.ReadWriteTx) error {
		_, err := tx.CreateBucketIfNotExists(swapBucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Put implements Store.
func (s *BoltStore) Put(state State) error {
	encoded, err := encodeState(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx kvdb.ReadWriteTx) error {
		bucket := tx.Bucket(swapBucket)
		return bucket.Put([]byte(state.SwapID()), encoded)
	})
}

// Get implements Store.
func (s *BoltStore) Get(swapID string) (State, error) {
	var out State
	err := s.db.View(func(tx kvdb.ReadTx) error {
		bucket := tx.Bucket(swapBucket)
		if bucket == nil {
			return ErrSwapNotFound
		}
		val := bucket.Get([]byte(swapID))
		if val == nil {
			return ErrSwapNotFound
		}
		decoded, err := decodeState(val)
		if err != nil {
			return err
		}
		out = decoded
		return nil
	})
	if err != nil {
		return State{}, err
	}
	return out, nil
}

// Delete implements Store.
func (s *BoltStore) Delete(swapID string) error {
	return s.db.Update(func(tx kvdb.ReadWriteTx) error {
		bucket := tx.Bucket(swapBucket)
		return bucket.Delete([]byte(swapID))
	})
}
