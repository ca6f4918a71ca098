package proptype

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOps_Complete(t *testing.T) {
	for k := Illegal; k < kindCount; k++ {
		assert.NotNil(t, kindOps[k].decode, k.String())
		assert.NotNil(t, kindOps[k].encode, k.String())
		assert.NotEmpty(t, kindNames[k])
	}
}

func TestClassify(t *testing.T) {
	for d := uint32(1); d <= 11; d++ {
		kind, ok, err := Classify(d, true)
		assert.Nil(t, err)
		assert.True(t, ok)
		assert.Equal(t, Kind(d), kind)
	}

	kind, ok, err := Classify(0, false)
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Equal(t, Illegal, kind)

	_, ok, err = Classify(0, true)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrInvalidType))

	for _, strict := range []bool{true, false} {
		_, ok, err = Classify(12, strict)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrInvalidType))
		assert.Contains(t, err.Error(), "unknown property type: 12")

		_, _, err = Classify(0xFFFF, strict)
		assert.True(t, errors.Is(err, ErrInvalidType))
	}
}

func TestKind_EncodeDecode(t *testing.T) {
	cases := []struct {
		kind  Kind
		value any
	}{
		{Int, int32(42)},
		{Int, int32(math.MinInt32)},
		{Bool, true},
		{Bool, false},
		{Double, 3.141592653589793},
		{Double, math.Inf(-1)},
		{Float, float32(-2.5)},
		{Long, int64(9999999999)},
		{Long, int64(math.MinInt64)},
		{Byte, int8(-7)},
		{Char, uint16('λ')},
		{Short, int16(-32768)},
		{ShortString, "hello"},
	}

	for _, c := range cases {
		block, err := c.kind.Encode(c.value)
		require.Nil(t, err, c.kind.String())

		v, err := c.kind.Decode(block)
		require.Nil(t, err, c.kind.String())
		assert.True(t, v.Resolved())
		assert.Equal(t, c.kind, v.Kind)
		assert.Equal(t, c.value, v.Interface(), c.kind.String())
	}
}

func TestKind_DecodeNaN(t *testing.T) {
	bits := uint64(0x7FF8000000000001)
	v, err := Double.Decode(bits)
	assert.Nil(t, err)
	assert.Equal(t, bits, math.Float64bits(v.Interface().(float64)))
}

func TestKind_DecodeUsesLowBits(t *testing.T) {
	v, err := Int.Decode(0xDEADBEEF_FFFFFFFF)
	assert.Nil(t, err)
	assert.Equal(t, int32(-1), v.Interface())

	v, err = Byte.Decode(0x1FF)
	assert.Nil(t, err)
	assert.Equal(t, int8(-1), v.Interface())

	v, err = Short.Decode(0x12348000)
	assert.Nil(t, err)
	assert.Equal(t, int16(math.MinInt16), v.Interface())

	v, err = Char.Decode(0xFFFF0041)
	assert.Nil(t, err)
	assert.Equal(t, uint16('A'), v.Interface())

	v, err = Bool.Decode(2)
	assert.Nil(t, err)
	assert.Equal(t, false, v.Interface())
}

func TestKind_Unresolved(t *testing.T) {
	for _, k := range []Kind{String, Array} {
		v, err := k.Decode(12345)
		assert.Nil(t, err)
		assert.False(t, v.Resolved())
		assert.Nil(t, v.Interface())
		assert.Equal(t, k.String()+"(unresolved)", v.String())

		_, err = k.Encode("x")
		assert.True(t, errors.Is(err, ErrDynamicValue))
		assert.False(t, k.Inline())
	}
}

func TestKind_Illegal(t *testing.T) {
	_, err := Illegal.Decode(0)
	assert.True(t, errors.Is(err, ErrInvalidType))

	_, err = Illegal.Encode(int32(1))
	assert.True(t, errors.Is(err, ErrInvalidType))

	_, err = Kind(12).Decode(0)
	assert.True(t, errors.Is(err, ErrInvalidType))
	assert.Equal(t, "Kind(12)", Kind(12).String())
	assert.False(t, Illegal.Valid())
}

func TestKind_EncodeMismatch(t *testing.T) {
	_, err := Int.Encode(int64(1))
	assert.True(t, errors.Is(err, ErrValueMismatch))

	_, err = ShortString.Encode(42)
	assert.True(t, errors.Is(err, ErrValueMismatch))
}

func TestValue_String(t *testing.T) {
	v, err := Char.Decode('x')
	assert.Nil(t, err)
	assert.Equal(t, "CHAR('x')", v.String())

	v, err = Long.Decode(7)
	assert.Nil(t, err)
	assert.Equal(t, "LONG(7)", v.String())
}
