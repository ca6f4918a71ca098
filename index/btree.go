package index

import (
	"sync"

	"github.com/cqkv/propmigrate/model"
	"github.com/google/btree"
)

var _ Index = (*BTree)(nil)

const defaultDegree = 32

// BTree implement the index
type BTree struct {
	tree *btree.BTree
	lock *sync.RWMutex
}

// Item implement the btree.Item interface
type Item struct {
	id     model.RecordId
	record *model.PropertyRecord
}

func (i *Item) Less(than btree.Item) bool {
	return i.id < than.(*Item).id
}

func NewBTree(degree int) *BTree {
	if degree <= 0 {
		degree = defaultDegree
	}
	return &BTree{
		tree: btree.New(degree),
		lock: &sync.RWMutex{},
	}
}

// Put return false if a record with the same id was replaced
func (bt *BTree) Put(record *model.PropertyRecord) bool {
	item := &Item{
		id:     record.ID,
		record: record,
	}
	bt.lock.Lock()
	defer bt.lock.Unlock()
	return bt.tree.ReplaceOrInsert(item) == nil
}

func (bt *BTree) Get(id model.RecordId) *model.PropertyRecord {
	bt.lock.RLock()
	btItem := bt.tree.Get(&Item{id: id})
	bt.lock.RUnlock()
	if btItem == nil {
		return nil
	}
	return btItem.(*Item).record
}

func (bt *BTree) Size() int {
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	return bt.tree.Len()
}

func (bt *BTree) Close() error {
	bt.lock.Lock()
	bt.tree.Clear(false)
	bt.lock.Unlock()
	return nil
}

func (bt *BTree) Iterator() Iterator {
	return bt.newBtreeIterator()
}

type btreeIterator struct {
	values []*Item
	curIdx int
}

// the iterator works on a snapshot, later writes are not seen
func (bt *BTree) newBtreeIterator() *btreeIterator {
	bt.lock.RLock()
	defer bt.lock.RUnlock()

	iterator := &btreeIterator{
		values: make([]*Item, 0, bt.tree.Len()),
	}
	bt.tree.Ascend(func(item btree.Item) bool {
		iterator.values = append(iterator.values, item.(*Item))
		return true
	})

	return iterator
}

func (bti *btreeIterator) Rewind() {
	bti.curIdx = 0
}

func (bti *btreeIterator) Next() {
	bti.curIdx++
}

func (bti *btreeIterator) Valid() bool {
	return bti.curIdx < len(bti.values)
}

func (bti *btreeIterator) ID() model.RecordId {
	return bti.values[bti.curIdx].id
}

func (bti *btreeIterator) Record() *model.PropertyRecord {
	return bti.values[bti.curIdx].record
}

func (bti *btreeIterator) Close() {
	bti.values = nil
}
