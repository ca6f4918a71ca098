package fio

// IOManager is the read side of a store file, it can be custom in options
type IOManager interface {
	// Read fills buf from offset, short reads return io.EOF like io.ReaderAt
	Read(buf []byte, offset int64) (int, error)
	Size() (int64, error)
	Close() error
}

// IOType selects the IOManager used for a store file
type IOType int

const (
	StandardFileIO IOType = iota
	MemoryMap
)

func NewIOManager(path string, ioType IOType) (IOManager, error) {
	switch ioType {
	case MemoryMap:
		return NewMMapIO(path)
	default:
		return NewFileIO(path)
	}
}
