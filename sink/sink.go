// Package sink holds the destinations of a migration pass. Records are staged by
// Put and only become visible on Commit, so a failed pass leaves nothing behind.
package sink

import (
	"github.com/cqkv/propmigrate/model"
)

type Sink interface {
	Put(record *model.PropertyRecord) error
	Commit() error
	Discard() error
}
