package store

import (
	"time"

	bolt "go.etcd.io/bbolt"
	"src.calc.sh/pkg/store/storedefs"
)

const bucketHistory = "history"

// Time to wait for the file lock held by another process.
const boltOpenTimeout = time.Second

var initDB = map[string](func(*bolt.Tx) error){
	"initialize history table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	},
}

type boltStore struct {
	db *bolt.DB
}

// NewBoltStore opens or creates a bbolt database at the given path.
func NewBoltStore(path string) (storedefs.Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, &Error{Bolt, "open", err}
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				logger.Printf("failed to %s: %v", name, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, &Error{Bolt, "initialize", err}
	}
	return &boltStore{db}, nil
}

func (s *boltStore) LoadHistory() ([]storedefs.Entry, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketHistory)).Get([]byte(storedefs.HistoryKey))
		if v != nil {
			// v is only valid during the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, &Error{Bolt, "load", err}
	}
	if data == nil {
		return nil, nil
	}
	entries, err := unmarshalEntries(data)
	if err != nil {
		return nil, &Error{Bolt, "load", err}
	}
	return entries, nil
}

func (s *boltStore) SaveHistory(entries []storedefs.Entry) error {
	data, err := marshalEntries(entries)
	if err != nil {
		return &Error{Bolt, "save", err}
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketHistory)).Put([]byte(storedefs.HistoryKey), data)
	})
	if err != nil {
		return &Error{Bolt, "save", err}
	}
	return nil
}

func (s *boltStore) ClearHistory() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketHistory)).Delete([]byte(storedefs.HistoryKey))
	})
	if err != nil {
		return &Error{Bolt, "clear", err}
	}
	return nil
}

func (s *boltStore) Close() error { return s.db.Close() }
