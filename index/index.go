package index

import (
	"github.com/cqkv/propmigrate/model"
)

// Index holds migrated records by id
// you can use some other data structure once you implement this interface
type Index interface {
	Put(record *model.PropertyRecord) bool
	Get(id model.RecordId) *model.PropertyRecord
	Size() int
	Iterator() Iterator
}

// Iterator walks an index in ascending id order
type Iterator interface {
	Rewind()
	Next()
	Valid() bool
	ID() model.RecordId
	Record() *model.PropertyRecord
	Close()
}
