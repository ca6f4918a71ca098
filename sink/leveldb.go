package sink

import (
	"encoding/binary"
	"os"
	"sync"

	"github.com/cqkv/propmigrate/codec"
	"github.com/cqkv/propmigrate/model"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	ErrNotFound = errors.New("property not found")
	ErrClosed   = errors.New("sink is closed")
)

var propPrefix = []byte("/prop/")

func toPropKey(id model.RecordId) []byte {
	key := make([]byte, len(propPrefix)+8)
	copy(key, propPrefix)
	binary.BigEndian.PutUint64(key[len(propPrefix):], id)
	return key
}

// LevelDB stores migrated properties keyed by record id
type LevelDB struct {
	db    *leveldb.DB
	codec codec.Codec

	mu     sync.Mutex
	batch  *leveldb.Batch
	closed bool
}

var _ Sink = (*LevelDB)(nil)

func Open(dir string) (*LevelDB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(dir, &opt.Options{
		Compression: opt.NoCompression,
		Filter:      filter.NewBloomFilter(10), // 10 bits/key
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb at %s", dir)
	}
	return newLevelDB(db), nil
}

// OpenExisting opens a store written by an earlier migration for reading.
// It never creates dir or an empty database.
func OpenExisting(dir string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{
		ErrorIfMissing: true,
		ReadOnly:       true,
		Filter:         filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb at %s", dir)
	}
	return newLevelDB(db), nil
}

// OpenWithStorage opens on any goleveldb storage, tests use storage.NewMemStorage
func OpenWithStorage(stor storage.Storage) (*LevelDB, error) {
	db, err := leveldb.Open(stor, nil)
	if err != nil {
		return nil, err
	}
	return newLevelDB(db), nil
}

func newLevelDB(db *leveldb.DB) *LevelDB {
	return &LevelDB{
		db:    db,
		codec: codec.NewCodecImpl(),
		batch: new(leveldb.Batch),
	}
}

func (l *LevelDB) Put(record *model.PropertyRecord) error {
	data, err := l.codec.MarshalPropertyData(record)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.batch.Put(toPropKey(record.ID), data)
	return nil
}

// Commit writes everything staged since the last commit in one synced batch
func (l *LevelDB) Commit() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if l.batch.Len() == 0 {
		return nil
	}
	if err := l.db.Write(l.batch, &opt.WriteOptions{Sync: true}); err != nil {
		return err
	}
	l.batch.Reset()
	return nil
}

func (l *LevelDB) Discard() error {
	l.mu.Lock()
	l.batch.Reset()
	l.mu.Unlock()
	return nil
}

func (l *LevelDB) Get(id model.RecordId) (*model.PropertyRecord, error) {
	data, err := l.db.Get(toPropKey(id), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Wrapf(ErrNotFound, "record %d", id)
	}
	if err != nil {
		return nil, err
	}

	record := &model.PropertyRecord{}
	if err = l.codec.UnmarshalPropertyData(data, record); err != nil {
		return nil, errors.Wrapf(err, "record %d", id)
	}
	return record, nil
}

// Count returns the number of committed properties
func (l *LevelDB) Count() (int, error) {
	iter := l.db.NewIterator(util.BytesPrefix(propPrefix), &opt.ReadOptions{DontFillCache: true})
	defer iter.Release()

	var n int
	for iter.Next() {
		n++
	}
	return n, iter.Error()
}

func (l *LevelDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.batch.Reset()
	return l.db.Close()
}
