package shortstring

import (
	"github.com/pkg/errors"
)

/*
compact string layout (64 bits):
	- header: top byte, high nibble = table id, low nibble = length
	- chars: packed from bit 0 upward, step bits per char
	table(4) | length(4) | chars(56)
a zero block is the empty string.
*/

const (
	headerShift = 56
	payloadBits = 56
	maxLength   = 0x0F
)

var (
	ErrNotEncodable = errors.New("string can not be encoded as a short string")
	ErrCorrupt      = errors.New("corrupted short string")
)

type table struct {
	id       uint8
	name     string
	step     uint
	alphabet []rune // nil means identity up to 1<<step
}

func (t *table) maxLen() int {
	n := payloadBits / int(t.step)
	if n > maxLength {
		n = maxLength
	}
	return n
}

func (t *table) encode(r rune) (uint64, bool) {
	if t.alphabet == nil {
		if r < 0 || r >= 1<<t.step {
			return 0, false
		}
		return uint64(r), true
	}
	for i, c := range t.alphabet {
		if c == r {
			return uint64(i), true
		}
	}
	return 0, false
}

func (t *table) decode(code uint64) rune {
	if t.alphabet == nil {
		return rune(code)
	}
	return t.alphabet[code]
}

// tables are tried in order, the densest first
var tables = []*table{
	{id: 1, name: "numerical", step: 4, alphabet: []rune("0123456789 .-+,'")},
	{id: 2, name: "upper", step: 5, alphabet: []rune(" ABCDEFGHIJKLMNOPQRSTUVWXYZ_.-:/")},
	{id: 3, name: "lower", step: 5, alphabet: []rune(" abcdefghijklmnopqrstuvwxyz_.-:/")},
	{id: 4, name: "alphanum", step: 6, alphabet: []rune(" abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_")},
	{id: 5, name: "latin1", step: 8},
}

func tableByID(id uint8) *table {
	for _, t := range tables {
		if t.id == id {
			return t
		}
	}
	return nil
}

// Encode packs s into a single block
func Encode(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	runes := []rune(s)

	for _, t := range tables {
		if len(runes) > t.maxLen() {
			continue
		}
		if block, ok := encodeWith(t, runes); ok {
			return block, nil
		}
	}
	return 0, errors.Wrapf(ErrNotEncodable, "%q", s)
}

func encodeWith(t *table, runes []rune) (uint64, bool) {
	var block uint64
	for i, r := range runes {
		code, ok := t.encode(r)
		if !ok {
			return 0, false
		}
		block |= code << (uint(i) * t.step)
	}
	header := uint64(t.id)<<4 | uint64(len(runes))
	return block | header<<headerShift, true
}

// Decode unpacks a block written by Encode
func Decode(block uint64) (string, error) {
	if block == 0 {
		return "", nil
	}

	header := uint8(block >> headerShift)
	t := tableByID(header >> 4)
	if t == nil {
		return "", errors.Wrapf(ErrCorrupt, "unknown table %d", header>>4)
	}

	length := int(header & 0x0F)
	if length > t.maxLen() {
		return "", errors.Wrapf(ErrCorrupt, "length %d exceeds %s table", length, t.name)
	}

	mask := uint64(1)<<t.step - 1
	runes := make([]rune, length)
	for i := 0; i < length; i++ {
		code := (block >> (uint(i) * t.step)) & mask
		if t.alphabet != nil && int(code) >= len(t.alphabet) {
			return "", errors.Wrapf(ErrCorrupt, "code %d out of %s table", code, t.name)
		}
		runes[i] = t.decode(code)
	}
	return string(runes), nil
}
