// Package proptype interprets the 8 byte inline payload of a legacy property record.
//
// Every record carries a 16 bit type discriminant. The discriminant selects one of the
// kinds below, and the kind alone decides how the payload bits are read. String and
// Array payloads point into a dynamic block chain which is resolved elsewhere; their
// decoded values are reported as unresolved.
package proptype

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind uint8

const (
	Illegal Kind = iota
	Int
	String
	Bool
	Double
	Float
	Long
	Byte
	Char
	Array
	Short
	ShortString

	kindCount
)

var (
	ErrInvalidType   = errors.New("invalid property type")
	ErrDynamicValue  = errors.New("value is stored in a dynamic block chain")
	ErrValueMismatch = errors.New("value does not match property type")
)

var kindNames = [kindCount]string{
	Illegal:     "ILLEGAL",
	Int:         "INT",
	String:      "STRING",
	Bool:        "BOOL",
	Double:      "DOUBLE",
	Float:       "FLOAT",
	Long:        "LONG",
	Byte:        "BYTE",
	Char:        "CHAR",
	Array:       "ARRAY",
	Short:       "SHORT",
	ShortString: "SHORT_STRING",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k names one of the eleven usable kinds
func (k Kind) Valid() bool {
	return k > Illegal && k < kindCount
}

// Inline reports whether the whole value lives in the payload
func (k Kind) Inline() bool {
	return k.Valid() && k != String && k != Array
}

// Classify maps a stored discriminant to its kind.
// A zero discriminant marks an unallocated slot: it is absent (ok == false) when
// strict is off and an error otherwise. Anything above ShortString is always an error.
func Classify(discriminant uint32, strict bool) (kind Kind, ok bool, err error) {
	switch {
	case discriminant == 0 && !strict:
		return Illegal, false, nil
	case discriminant == 0:
		return Illegal, false, errors.Wrap(ErrInvalidType, "invalid type: 0 for record")
	case discriminant >= uint32(kindCount):
		return Illegal, false, errors.Wrapf(ErrInvalidType, "unknown property type: %d", discriminant)
	}
	return Kind(discriminant), true, nil
}

// Decode interprets block as a value of kind k
func (k Kind) Decode(block uint64) (Value, error) {
	if k >= kindCount {
		return Value{}, errors.Wrapf(ErrInvalidType, "unknown property type: %d", uint8(k))
	}
	return kindOps[k].decode(block)
}

// Encode builds the payload for v, the inverse of Decode for inline kinds
func (k Kind) Encode(v any) (uint64, error) {
	if k >= kindCount {
		return 0, errors.Wrapf(ErrInvalidType, "unknown property type: %d", uint8(k))
	}
	return kindOps[k].encode(v)
}
