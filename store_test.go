package propmigrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cqkv/propmigrate/codec"
	"github.com/cqkv/propmigrate/fio"
	"github.com/cqkv/propmigrate/model"
	"github.com/cqkv/propmigrate/proptype"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// slot builds an in use record for a legacy store fixture
func slot(id model.RecordId, kind proptype.Kind, block uint64, prev, next uint64) *model.PropertyRecord {
	record := model.NewPropertyRecord(id)
	record.InUse = true
	record.Type = kind
	record.KeyIndexID = uint32(id) + 100
	record.PropBlock = block
	record.PrevProp = prev
	record.NextProp = next
	return record
}

func tombstone(id model.RecordId) *model.PropertyRecord {
	return model.NewPropertyRecord(id)
}

func encodeStore(t *testing.T, records []*model.PropertyRecord) []byte {
	cl := codec.NewCodecImpl()
	var data []byte
	for i, record := range records {
		require.Equal(t, model.RecordId(i), record.ID, "fixture records must be in slot order")
		slotData, err := cl.MarshalSlot(record)
		require.Nil(t, err)
		data = append(data, slotData...)
	}
	return data
}

// writeStore writes a store file with the version trailer into dir
func writeStore(t *testing.T, dir string, records []*model.PropertyRecord, extra ...byte) string {
	data := encodeStore(t, records)
	data = append(data, extra...)
	data = append(data, model.Trailer(model.LegacyVersion)...)

	path := filepath.Join(dir, model.StoreFileName)
	require.Nil(t, os.WriteFile(path, data, 0644))
	return path
}

func quietLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// countingIO counts slot reads and can pretend the file is larger than it is
type countingIO struct {
	fio.IOManager
	reads   int
	extra   int64
	readErr error
	closed  int
}

func (c *countingIO) Read(buf []byte, offset int64) (int, error) {
	c.reads++
	if c.readErr != nil {
		return 0, c.readErr
	}
	return c.IOManager.Read(buf, offset)
}

func (c *countingIO) Size() (int64, error) {
	size, err := c.IOManager.Size()
	return size + c.extra, err
}

func (c *countingIO) Close() error {
	c.closed++
	return c.IOManager.Close()
}

func openCounting(t *testing.T, path string) *countingIO {
	ioManager, err := fio.NewFileIO(path)
	require.Nil(t, err)
	return &countingIO{IOManager: ioManager}
}

// writeRaw writes slot data and the trailer without going through the codec
func writeRaw(t *testing.T, slots []byte) string {
	data := append(append([]byte(nil), slots...), model.Trailer(model.LegacyVersion)...)
	path := filepath.Join(t.TempDir(), model.StoreFileName)
	require.Nil(t, os.WriteFile(path, data, 0644))
	return path
}
