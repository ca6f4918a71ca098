package model

import (
	"fmt"
	"strings"

	"github.com/cqkv/propmigrate/proptype"
	"github.com/pkg/errors"
)

// RecordId is the slot position of a record in its store
type RecordId = uint64

// PropertyRecord is one decoded slot of the legacy property store.
// PrevProp and NextProp link the properties of one node or relationship,
// NoPointer ends the chain.
type PropertyRecord struct {
	ID         RecordId
	InUse      bool
	Type       proptype.Kind
	KeyIndexID uint32
	PropBlock  uint64
	PrevProp   uint64
	NextProp   uint64
	Values     ValueChain
}

func NewPropertyRecord(id RecordId) *PropertyRecord {
	return &PropertyRecord{
		ID:     id,
		Values: Unresolved{},
	}
}

// IsLight reports whether the dynamic value blocks have not been loaded
func (r *PropertyRecord) IsLight() bool {
	_, resolved := r.Values.(Resolved)
	return !resolved
}

// Resolve attaches the dynamic blocks of a string or array value.
// It is called by the dynamic store loader, never by the reader.
func (r *PropertyRecord) Resolve(blocks []DynamicRecord) {
	r.Values = Resolved(blocks)
}

// Value decodes the inline payload
func (r *PropertyRecord) Value() (proptype.Value, error) {
	return r.Type.Decode(r.PropBlock)
}

// Data pairs the decoded value with its key
func (r *PropertyRecord) Data() (*PropertyData, error) {
	v, err := r.Value()
	if err != nil {
		return nil, errors.Wrapf(err, "record %d", r.ID)
	}
	return &PropertyData{
		KeyIndexID: r.KeyIndexID,
		ID:         r.ID,
		Value:      v,
	}, nil
}

func (r *PropertyRecord) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PropertyRecord[%d,%t,%s,%d,%d,%d,%d, Value[",
		r.ID, r.InUse, r.Type, r.KeyIndexID, r.PropBlock, r.PrevProp, r.NextProp)
	if blocks, ok := r.Values.(Resolved); ok {
		for _, b := range blocks {
			sb.WriteString(b.String())
		}
	}
	sb.WriteString("]]")
	return sb.String()
}

// PropertyData is a property as the migrated store sees it
type PropertyData struct {
	KeyIndexID uint32
	ID         RecordId
	Value      proptype.Value
}

// ValueChain is either Unresolved or Resolved
type ValueChain interface {
	valueChain()
}

// Unresolved means the dynamic blocks of the value were never loaded
type Unresolved struct{}

// Resolved holds the dynamic blocks of a value in chain order
type Resolved []DynamicRecord

func (Unresolved) valueChain() {}
func (Resolved) valueChain()   {}

// DynamicRecord is one overflow block of a string or array value
type DynamicRecord struct {
	ID        RecordId
	InUse     bool
	NextBlock uint64
	Data      []byte
}

func (d DynamicRecord) String() string {
	return fmt.Sprintf("DynamicRecord[%d,%t,%d,%d]", d.ID, d.InUse, d.NextBlock, len(d.Data))
}
