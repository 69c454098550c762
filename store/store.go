// Package store persists private keys to an embedded bbolt database,
// grounded on the teacher's chain/boltdb/store.go: a single bucket, hex-JSON
// encoded values, one *bolt.DB guarded by a mutex.
package store

import (
	"path"
	"sync"

	bolt "go.etcd.io/bbolt"

	"go.dedis.ch/elgamal/elgamal"
	"go.dedis.ch/elgamal/group"
	"go.dedis.ch/elgamal/log"
)

// FileName is the name of the file this store writes to inside its folder.
const FileName = "elgamal.db"

// OpenPerm is the permission used to open/create the store file.
const OpenPerm = 0660

var keyBucket = []byte("keys")

// Store persists named PrivateKeys in an embedded bbolt database.
//
//nolint:gocritic // a mutex-guarded handle, as in the teacher's BoltStore
type Store struct {
	sync.Mutex
	db  *bolt.DB
	log log.Logger
}

// Open opens (creating if absent) the store file inside folder.
func Open(l log.Logger, folder string, opts *bolt.Options) (*Store, error) {
	dbPath := path.Join(folder, FileName)
	db, err := bolt.Open(dbPath, OpenPerm, opts)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(keyBucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db, log: l}, nil
}

// Close closes the underlying database file.
func (st *Store) Close() error {
	st.Lock()
	defer st.Unlock()
	return st.db.Close()
}

// SaveKey persists priv under name, hex-JSON encoded.
func (st *Store) SaveKey(s *group.Suite, name string, priv *elgamal.PrivateKey) error {
	st.Lock()
	defer st.Unlock()

	b, err := priv.Marshal(s, elgamal.ModeHex)
	if err != nil {
		return err
	}
	return st.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(keyBucket)
		return bucket.Put([]byte(name), b)
	})
}

// LoadKey returns the PrivateKey previously saved under name.
func (st *Store) LoadKey(s *group.Suite, name string) (*elgamal.PrivateKey, error) {
	st.Lock()
	defer st.Unlock()

	var b []byte
	err := st.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(keyBucket)
		v := bucket.Get([]byte(name))
		if v == nil {
			return elgamal.ErrNotFound
		}
		b = make([]byte, len(v))
		copy(b, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return elgamal.UnmarshalPrivateKey(s, b, elgamal.ModeHex)
}

// DeleteKey removes the key previously saved under name, if any.
func (st *Store) DeleteKey(name string) error {
	st.Lock()
	defer st.Unlock()

	return st.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(keyBucket)
		return bucket.Delete([]byte(name))
	})
}
