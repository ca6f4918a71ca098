package fio

import (
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MMapIO maps the whole store file read only
type MMapIO struct {
	fd   *os.File
	data mmap.MMap
}

func NewMMapIO(file string) (*MMapIO, error) {
	fd, err := os.OpenFile(file, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	stat, err := fd.Stat()
	if err != nil {
		_ = fd.Close()
		return nil, err
	}

	m := &MMapIO{fd: fd}
	// a zero length mapping is rejected by the kernel
	if stat.Size() > 0 {
		m.data, err = mmap.Map(fd, mmap.RDONLY, 0)
		if err != nil {
			_ = fd.Close()
			return nil, err
		}
	}
	return m, nil
}

func (m *MMapIO) Read(buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, os.ErrInvalid
	}
	if offset >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(buf, m.data[offset:])
	if n < len(buf) {
		return n, io.EOF
	}
	return n, nil
}

func (m *MMapIO) Size() (int64, error) {
	return int64(len(m.data)), nil
}

func (m *MMapIO) Close() error {
	if m.data != nil {
		if err := m.data.Unmap(); err != nil {
			_ = m.fd.Close()
			return err
		}
		m.data = nil
	}
	return m.fd.Close()
}
