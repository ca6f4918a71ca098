package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCrc(t *testing.T) {
	// IEEE check value
	assert.Equal(t, uint32(0xCBF43926), GenerateCrc([]byte("123456789")))
	assert.Equal(t, uint32(0), GenerateCrc(nil))
}

func TestCheckCrc(t *testing.T) {
	data := []byte("PropertyStore v0.9.9")
	crc := GenerateCrc(data)
	assert.True(t, CheckCrc(crc, data))

	data[0] = 'p'
	assert.False(t, CheckCrc(crc, data))
}
