package sink

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cqkv/propmigrate/index"
	"github.com/cqkv/propmigrate/model"
	"github.com/cqkv/propmigrate/proptype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

func newRecord(id model.RecordId, v int32) *model.PropertyRecord {
	record := model.NewPropertyRecord(id)
	record.InUse = true
	record.Type = proptype.Int
	record.KeyIndexID = 3
	record.PropBlock = uint64(int64(v))
	record.PrevProp = 0xFFFFFFFFF
	record.NextProp = 0xFFFFFFFFF
	return record
}

func newMemLevelDB(t *testing.T) *LevelDB {
	l, err := OpenWithStorage(storage.NewMemStorage())
	require.Nil(t, err)
	t.Cleanup(func() {
		_ = l.Close()
	})
	return l
}

func TestLevelDB_Commit(t *testing.T) {
	l := newMemLevelDB(t)

	assert.Nil(t, l.Put(newRecord(1, 10)))
	assert.Nil(t, l.Put(newRecord(2, -20)))

	// nothing is visible before commit
	_, err := l.Get(1)
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.Nil(t, l.Commit())

	record, err := l.Get(2)
	assert.Nil(t, err)
	assert.Equal(t, newRecord(2, -20), record)

	n, err := l.Count()
	assert.Nil(t, err)
	assert.Equal(t, 2, n)

	// empty commit is a no-op
	assert.Nil(t, l.Commit())
}

func TestLevelDB_Discard(t *testing.T) {
	l := newMemLevelDB(t)

	assert.Nil(t, l.Put(newRecord(1, 10)))
	assert.Nil(t, l.Discard())
	assert.Nil(t, l.Commit())

	n, err := l.Count()
	assert.Nil(t, err)
	assert.Equal(t, 0, n)
}

func TestLevelDB_PutInvalid(t *testing.T) {
	l := newMemLevelDB(t)
	record := newRecord(1, 10)
	record.Type = proptype.Illegal

	err := l.Put(record)
	assert.True(t, errors.Is(err, proptype.ErrInvalidType))
}

func TestLevelDB_OpenDir(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir)
	require.Nil(t, err)

	assert.Nil(t, l.Put(newRecord(5, 50)))
	assert.Nil(t, l.Commit())
	assert.Nil(t, l.Close())
	assert.Nil(t, l.Close())
	assert.Equal(t, ErrClosed, l.Put(newRecord(6, 60)))

	l, err = Open(dir)
	require.Nil(t, err)
	defer l.Close()

	record, err := l.Get(5)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50), record.PropBlock)
}

func TestLevelDB_OpenExisting(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := OpenExisting(missing)
	assert.NotNil(t, err)
	assert.NoDirExists(t, missing)

	// a directory without a database is not created on the fly
	empty := t.TempDir()
	_, err = OpenExisting(empty)
	assert.NotNil(t, err)
	entries, err := os.ReadDir(empty)
	assert.Nil(t, err)
	assert.Empty(t, entries)

	dir := t.TempDir()
	l, err := Open(dir)
	require.Nil(t, err)
	assert.Nil(t, l.Put(newRecord(7, 70)))
	assert.Nil(t, l.Commit())
	assert.Nil(t, l.Close())

	l, err = OpenExisting(dir)
	require.Nil(t, err)
	defer l.Close()

	record, err := l.Get(7)
	assert.Nil(t, err)
	assert.Equal(t, uint64(70), record.PropBlock)
}

func TestIndex(t *testing.T) {
	bt := index.NewBTree(0)
	s := NewIndex(bt)

	assert.Nil(t, s.Put(newRecord(1, 10)))
	assert.Equal(t, 0, bt.Size())
	assert.Nil(t, s.Commit())
	assert.Equal(t, 1, bt.Size())

	assert.Nil(t, s.Put(newRecord(2, 20)))
	assert.Nil(t, s.Discard())
	assert.Nil(t, s.Commit())
	assert.Equal(t, 1, s.Index().Size())
}
