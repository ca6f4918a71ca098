package fio

import "os"

// FileIO is the default implement for IOManager
type FileIO struct {
	fd *os.File
}

// NewFileIO opens the store read only, migration never writes the legacy file
func NewFileIO(file string) (*FileIO, error) {
	fd, err := os.OpenFile(file, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return &FileIO{fd: fd}, nil
}

func (fio *FileIO) Read(buf []byte, offset int64) (int, error) {
	return fio.fd.ReadAt(buf, offset)
}

func (fio *FileIO) Size() (int64, error) {
	stat, err := fio.fd.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

func (fio *FileIO) Close() error {
	return fio.fd.Close()
}
