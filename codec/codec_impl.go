package codec

import (
	"encoding/binary"
	"io"

	"github.com/cqkv/propmigrate/model"
	"github.com/cqkv/propmigrate/proptype"
	"github.com/cqkv/propmigrate/utils"
	"github.com/pkg/errors"
)

var (
	ErrPointerOverflow = errors.New("pointer does not fit in 36 bits")
	ErrCorruptedData   = errors.New("migrated record data is corrupted")
)

const inUseBit = 0x1

type CodecImpl struct{}

func NewCodecImpl() *CodecImpl {
	return &CodecImpl{}
}

/*
legacy slot, big endian, 25 bytes:
	- header: bit0 in use, bits 4-7 high prev pointer bits
	- type: bits 0-15 discriminant, bits 16-19 high next pointer bits
	header(1) | type(4) | keyIndexId(4) | propBlock(8) | prevProp(4) | nextProp(4)
*/

func (cl *CodecImpl) UnmarshalSlot(data []byte, id model.RecordId, record *model.PropertyRecord) (bool, error) {
	if len(data) < model.RecordSize {
		return false, io.ErrUnexpectedEOF
	}

	header := data[0]
	if header&inUseBit == 0 {
		return false, nil
	}

	typeWord := binary.BigEndian.Uint32(data[1:5])
	kind, _, err := proptype.Classify(typeWord&0xFFFF, true)
	if err != nil {
		return true, err
	}

	record.ID = id
	record.InUse = true
	record.Type = kind
	record.KeyIndexID = binary.BigEndian.Uint32(data[5:9])
	record.PropBlock = binary.BigEndian.Uint64(data[9:17])
	record.PrevProp = Widen(binary.BigEndian.Uint32(data[17:21]), header)
	record.NextProp = WidenNext(binary.BigEndian.Uint32(data[21:25]), typeWord)
	if record.Values == nil {
		record.Values = model.Unresolved{}
	}

	return true, nil
}

func (cl *CodecImpl) MarshalSlot(record *model.PropertyRecord) ([]byte, error) {
	data := make([]byte, model.RecordSize)
	if !record.InUse {
		return data, nil
	}

	if record.PrevProp > MaxPointer || record.NextProp > MaxPointer {
		return nil, errors.Wrapf(ErrPointerOverflow, "record %d", record.ID)
	}
	prev, prevNibble := Narrow(record.PrevProp)
	next, nextNibble := Narrow(record.NextProp)

	data[0] = inUseBit | prevNibble<<4
	binary.BigEndian.PutUint32(data[1:5], uint32(record.Type)|uint32(nextNibble)<<16)
	binary.BigEndian.PutUint32(data[5:9], record.KeyIndexID)
	binary.BigEndian.PutUint64(data[9:17], record.PropBlock)
	binary.BigEndian.PutUint32(data[17:21], prev)
	binary.BigEndian.PutUint32(data[21:25], next)

	return data, nil
}

/*
migrated record:
	crc(4) | type(1) | id(uvarint) | keyIndexId(uvarint) | prevProp(uvarint) | nextProp(uvarint) | propBlock(8)
	crc covers everything after it
*/

const maxPropertyDataSize = 4 + 1 + binary.MaxVarintLen64*4 + 8

func (cl *CodecImpl) MarshalPropertyData(record *model.PropertyRecord) ([]byte, error) {
	if !record.Type.Valid() {
		return nil, errors.Wrapf(proptype.ErrInvalidType, "record %d", record.ID)
	}

	buf := make([]byte, maxPropertyDataSize)
	buf[4] = byte(record.Type)

	idx := 5
	idx += binary.PutUvarint(buf[idx:], record.ID)
	idx += binary.PutUvarint(buf[idx:], uint64(record.KeyIndexID))
	idx += binary.PutUvarint(buf[idx:], record.PrevProp)
	idx += binary.PutUvarint(buf[idx:], record.NextProp)
	binary.BigEndian.PutUint64(buf[idx:], record.PropBlock)
	idx += 8

	binary.BigEndian.PutUint32(buf[:4], utils.GenerateCrc(buf[4:idx]))
	return buf[:idx], nil
}

func (cl *CodecImpl) UnmarshalPropertyData(data []byte, record *model.PropertyRecord) error {
	if len(data) < 4+1+4+8 {
		return io.ErrUnexpectedEOF
	}

	if !utils.CheckCrc(binary.BigEndian.Uint32(data[:4]), data[4:]) {
		return ErrCorruptedData
	}

	kind, _, err := proptype.Classify(uint32(data[4]), true)
	if err != nil {
		return err
	}

	idx := 5
	var fields [4]uint64
	for i := range fields {
		v, n := binary.Uvarint(data[idx:])
		if n <= 0 {
			return ErrCorruptedData
		}
		fields[i] = v
		idx += n
	}
	if len(data)-idx != 8 {
		return ErrCorruptedData
	}

	record.ID = fields[0]
	record.InUse = true
	record.Type = kind
	record.KeyIndexID = uint32(fields[1])
	record.PrevProp = fields[2]
	record.NextProp = fields[3]
	record.PropBlock = binary.BigEndian.Uint64(data[idx:])
	record.Values = model.Unresolved{}
	return nil
}
