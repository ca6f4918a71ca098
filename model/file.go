package model

import (
	"io"

	"github.com/cqkv/propmigrate/fio"
)

// StoreFile addresses a legacy store as fixed width slots
type StoreFile struct {
	IoManager fio.IOManager
	size      int64
	footer    int64
}

func OpenStoreFile(ioManager fio.IOManager, version string) (*StoreFile, error) {
	size, err := ioManager.Size()
	if err != nil {
		return nil, err
	}
	return &StoreFile{
		IoManager: ioManager,
		size:      size,
		footer:    FooterSize(version),
	}, nil
}

func (sf *StoreFile) Size() int64 {
	return sf.size
}

// SlotCount ignores a trailing partial slot
func (sf *StoreFile) SlotCount() uint64 {
	if sf.size <= sf.footer {
		return 0
	}
	return uint64((sf.size - sf.footer) / RecordSize)
}

// ReadSlot reads slot id into buf, buf must hold RecordSize bytes
func (sf *StoreFile) ReadSlot(id RecordId, buf []byte) (int, error) {
	n, err := sf.IoManager.Read(buf[:RecordSize], int64(id)*RecordSize)
	if err == io.EOF && n == RecordSize {
		err = nil
	}
	return n, err
}

// ReadTrailer returns the last footer bytes of the file
func (sf *StoreFile) ReadTrailer() ([]byte, error) {
	if sf.size < sf.footer {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, sf.footer)
	n, err := sf.IoManager.Read(buf, sf.size-sf.footer)
	if err != nil && !(err == io.EOF && n == len(buf)) {
		return nil, err
	}
	return buf, nil
}

func (sf *StoreFile) Close() error {
	return sf.IoManager.Close()
}
