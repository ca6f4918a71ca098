package proptype

import (
	"math"

	"github.com/cqkv/propmigrate/proptype/shortstring"
	"github.com/pkg/errors"
)

type kindOp struct {
	decode func(block uint64) (Value, error)
	encode func(v any) (uint64, error)
}

// kindOps has one entry per kind, indexed by discriminant
var kindOps = [kindCount]kindOp{
	Illegal: {
		decode: func(uint64) (Value, error) {
			return Value{}, errors.Wrap(ErrInvalidType, "invalid type: 0 for record")
		},
		encode: func(any) (uint64, error) {
			return 0, errors.Wrap(ErrInvalidType, "invalid type: 0 for record")
		},
	},
	Int: {
		decode: func(block uint64) (Value, error) {
			return Value{Kind: Int, data: int32(block)}, nil
		},
		encode: func(v any) (uint64, error) {
			i, ok := v.(int32)
			if !ok {
				return 0, mismatch(Int, v)
			}
			return uint64(int64(i)), nil
		},
	},
	String: {
		decode: unresolved(String),
		encode: dynamic(String),
	},
	Bool: {
		decode: func(block uint64) (Value, error) {
			return Value{Kind: Bool, data: block == 1}, nil
		},
		encode: func(v any) (uint64, error) {
			b, ok := v.(bool)
			if !ok {
				return 0, mismatch(Bool, v)
			}
			if b {
				return 1, nil
			}
			return 0, nil
		},
	},
	Double: {
		decode: func(block uint64) (Value, error) {
			return Value{Kind: Double, data: math.Float64frombits(block)}, nil
		},
		encode: func(v any) (uint64, error) {
			f, ok := v.(float64)
			if !ok {
				return 0, mismatch(Double, v)
			}
			return math.Float64bits(f), nil
		},
	},
	Float: {
		decode: func(block uint64) (Value, error) {
			return Value{Kind: Float, data: math.Float32frombits(uint32(block))}, nil
		},
		encode: func(v any) (uint64, error) {
			f, ok := v.(float32)
			if !ok {
				return 0, mismatch(Float, v)
			}
			// the legacy writer stored the raw int bits sign extended
			return uint64(int64(int32(math.Float32bits(f)))), nil
		},
	},
	Long: {
		decode: func(block uint64) (Value, error) {
			return Value{Kind: Long, data: int64(block)}, nil
		},
		encode: func(v any) (uint64, error) {
			l, ok := v.(int64)
			if !ok {
				return 0, mismatch(Long, v)
			}
			return uint64(l), nil
		},
	},
	Byte: {
		decode: func(block uint64) (Value, error) {
			return Value{Kind: Byte, data: int8(block)}, nil
		},
		encode: func(v any) (uint64, error) {
			b, ok := v.(int8)
			if !ok {
				return 0, mismatch(Byte, v)
			}
			return uint64(int64(b)), nil
		},
	},
	Char: {
		decode: func(block uint64) (Value, error) {
			return Value{Kind: Char, data: uint16(block)}, nil
		},
		encode: func(v any) (uint64, error) {
			c, ok := v.(uint16)
			if !ok {
				return 0, mismatch(Char, v)
			}
			return uint64(c), nil
		},
	},
	Array: {
		decode: unresolved(Array),
		encode: dynamic(Array),
	},
	Short: {
		decode: func(block uint64) (Value, error) {
			return Value{Kind: Short, data: int16(block)}, nil
		},
		encode: func(v any) (uint64, error) {
			s, ok := v.(int16)
			if !ok {
				return 0, mismatch(Short, v)
			}
			return uint64(int64(s)), nil
		},
	},
	ShortString: {
		decode: func(block uint64) (Value, error) {
			s, err := shortstring.Decode(block)
			if err != nil {
				return Value{}, err
			}
			return Value{Kind: ShortString, data: s}, nil
		},
		encode: func(v any) (uint64, error) {
			s, ok := v.(string)
			if !ok {
				return 0, mismatch(ShortString, v)
			}
			return shortstring.Encode(s)
		},
	},
}

func unresolved(k Kind) func(uint64) (Value, error) {
	return func(uint64) (Value, error) {
		return Value{Kind: k}, nil
	}
}

func dynamic(k Kind) func(any) (uint64, error) {
	return func(any) (uint64, error) {
		return 0, errors.Wrapf(ErrDynamicValue, "%s", k)
	}
}

func mismatch(k Kind, v any) error {
	return errors.Wrapf(ErrValueMismatch, "%s can not hold %T", k, v)
}
