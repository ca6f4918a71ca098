package benchmark

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cqkv/propmigrate"
	"github.com/cqkv/propmigrate/codec"
	"github.com/cqkv/propmigrate/model"
	"github.com/cqkv/propmigrate/proptype"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const (
	dir       = "./tmp/"
	slotCount = 100000
)

var (
	storePath string
	logger    = logrus.New()
)

func init() {
	logger.SetOutput(io.Discard)

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		panic(err)
	}
	storePath = filepath.Join(dir, model.StoreFileName)

	cl := codec.NewCodecImpl()
	data := make([]byte, 0, slotCount*model.RecordSize)
	for i := 0; i < slotCount; i++ {
		record := model.NewPropertyRecord(model.RecordId(i))
		// every tenth slot is a tombstone
		record.InUse = i%10 != 0
		record.Type = proptype.Long
		record.PropBlock = uint64(i)
		record.PrevProp = codec.NoPointer
		record.NextProp = codec.NoPointer
		slot, err := cl.MarshalSlot(record)
		if err != nil {
			panic(err)
		}
		data = append(data, slot...)
	}
	data = append(data, model.Trailer(model.LegacyVersion)...)
	if err := os.WriteFile(storePath, data, 0644); err != nil {
		panic(err)
	}
}

// Benchmark_ReadPropertyStore .
func Benchmark_ReadPropertyStore(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		records, err := propmigrate.ReadPropertyStore(storePath, propmigrate.WithLogger(logger))
		assert.Nil(b, err)
		assert.Equal(b, slotCount-slotCount/10, len(records))
	}
}

// Benchmark_ReadPropertyStoreMMap .
func Benchmark_ReadPropertyStoreMMap(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		records, err := propmigrate.ReadPropertyStore(storePath, propmigrate.WithLogger(logger), propmigrate.WithMMap())
		assert.Nil(b, err)
		assert.Equal(b, slotCount-slotCount/10, len(records))
	}
}

// Benchmark_UnmarshalSlot .
func Benchmark_UnmarshalSlot(b *testing.B) {
	cl := codec.NewCodecImpl()
	record := model.NewPropertyRecord(1)
	record.InUse = true
	record.Type = proptype.Int
	record.PrevProp = 0x312345678
	record.NextProp = codec.NoPointer
	data, err := cl.MarshalSlot(record)
	assert.Nil(b, err)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var decoded model.PropertyRecord
		_, _ = cl.UnmarshalSlot(data, 1, &decoded)
	}
}
