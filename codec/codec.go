package codec

import "github.com/cqkv/propmigrate/model"

type Codec interface {
	// UnmarshalSlot decodes one legacy slot, only in use slots are decoded past the header
	UnmarshalSlot(data []byte, id model.RecordId, record *model.PropertyRecord) (inUse bool, err error)

	// MarshalSlot return the legacy slot data of the record
	MarshalSlot(*model.PropertyRecord) ([]byte, error)

	// MarshalPropertyData return the migrated form of the record
	MarshalPropertyData(*model.PropertyRecord) ([]byte, error)

	UnmarshalPropertyData([]byte, *model.PropertyRecord) error
}
