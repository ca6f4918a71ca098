package propmigrate

import (
	"io"

	"github.com/cqkv/propmigrate/codec"
	"github.com/cqkv/propmigrate/fio"
	"github.com/cqkv/propmigrate/model"
	"github.com/sirupsen/logrus"
)

// Reader yields the in use records of a legacy property store in id order.
// It makes a single pass: once closed, by reaching the last slot or by an
// error, it stays closed.
type Reader struct {
	file  *model.StoreFile
	codec codec.Codec
	log   logrus.FieldLogger

	buf   []byte // reused for every slot
	next  model.RecordId
	count uint64
	stats ReaderStats

	closed bool
	err    error // terminal, returned by every Next after close
}

type ReaderStats struct {
	SlotsRead  uint64
	Records    uint64
	Tombstones uint64
	// Dynamic counts records whose value lives in the dynamic stores
	Dynamic    uint64
}

// OpenReader opens the store file at path read only
func OpenReader(path string, ops ...Option) (*Reader, error) {
	opts := newOptions(ops...)
	ioManager, err := opts.ioManagerCreator(path)
	if err != nil {
		return nil, newReadError(ErrStoreUnreadable, err)
	}
	r, err := newReader(ioManager, opts)
	if err != nil {
		_ = ioManager.Close()
		return nil, err
	}
	r.log = r.log.WithField("store", path)
	r.log.WithField("slots", r.count).Debug("legacy property store opened")
	return r, nil
}

// NewReader reads from an already open store, closing the reader closes ioManager
func NewReader(ioManager fio.IOManager, ops ...Option) (*Reader, error) {
	return newReader(ioManager, newOptions(ops...))
}

func newReader(ioManager fio.IOManager, opts *options) (*Reader, error) {
	file, err := model.OpenStoreFile(ioManager, opts.version)
	if err != nil {
		return nil, newReadError(ErrStoreUnreadable, err)
	}
	return &Reader{
		file:  file,
		codec: opts.codec,
		log:   opts.logger,
		buf:   make([]byte, model.RecordSize),
		count: file.SlotCount(),
	}, nil
}

func (r *Reader) SlotCount() uint64 {
	return r.count
}

func (r *Reader) StoreSize() int64 {
	return r.file.Size()
}

func (r *Reader) Stats() ReaderStats {
	return r.stats
}

// Next returns the next in use record, or io.EOF after the last slot.
// The record does not share memory with the reader.
func (r *Reader) Next() (*model.PropertyRecord, error) {
	if r.closed {
		if r.err != nil {
			return nil, r.err
		}
		return nil, ErrReaderClosed
	}

	for r.next < r.count {
		id := r.next
		r.next++

		n, err := r.file.ReadSlot(id, r.buf)
		r.stats.SlotsRead++
		switch {
		case err != nil && err != io.EOF:
			return nil, r.finish(newRecordError(ErrStoreUnreadable, id, err))
		case n < model.RecordSize:
			return nil, r.finish(newRecordError(ErrShortRead, id, io.ErrUnexpectedEOF))
		}

		record := model.NewPropertyRecord(id)
		inUse, err := r.codec.UnmarshalSlot(r.buf, id, record)
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				return nil, r.finish(newRecordError(ErrShortRead, id, err))
			}
			return nil, r.finish(newRecordError(ErrInvalidType, id, err))
		}
		if !inUse {
			r.stats.Tombstones++
			continue
		}

		r.stats.Records++
		if !record.Type.Inline() {
			r.stats.Dynamic++
		}
		return record, nil
	}

	r.log.WithFields(logrus.Fields{
		"slots":      r.stats.SlotsRead,
		"records":    r.stats.Records,
		"tombstones": r.stats.Tombstones,
		"dynamic":    r.stats.Dynamic,
	}).Debug("legacy property store read")
	return nil, r.finish(io.EOF)
}

// finish moves the reader to its terminal state and releases the file
func (r *Reader) finish(err error) error {
	r.err = err
	r.closed = true
	if err != io.EOF {
		r.log.WithError(err).Warn("legacy property store read aborted")
	}
	if closeErr := r.file.Close(); closeErr != nil {
		if err != io.EOF {
			r.log.WithError(closeErr).Warn("close legacy property store")
			return err
		}
		r.err = newReadError(ErrStoreUnreadable, closeErr)
	}
	return r.err
}

// Close stops the pass, it is safe at any point and more than once
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.err == nil {
		r.err = ErrReaderClosed
	}
	return r.file.Close()
}

// ReadPropertyStore reads every in use record of the store at path.
// Either all records are returned or none.
func ReadPropertyStore(path string, ops ...Option) ([]*model.PropertyRecord, error) {
	r, err := OpenReader(path, ops...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return readAll(r)
}

func readAll(r *Reader) ([]*model.PropertyRecord, error) {
	records := make([]*model.PropertyRecord, 0)
	for {
		record, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}
