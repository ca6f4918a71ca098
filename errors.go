package propmigrate

import (
	"fmt"

	"github.com/cqkv/propmigrate/model"
	"github.com/cqkv/propmigrate/proptype"
	"github.com/pkg/errors"
)

var (
	ErrStoreUnreadable = addPrefix("store is unreadable")
	ErrShortRead       = addPrefix("store is truncated")
	ErrInvalidType     = proptype.ErrInvalidType

	ErrReaderClosed = addPrefix("reader is closed")
	ErrStoreLocked  = addPrefix("store directory is in use")
	ErrBrokenChain  = addPrefix("property chain is broken")
	ErrNoSink       = addPrefix("no sink")
)

func addPrefix(errStr string) error {
	return errors.New("propmigrate err: " + errStr)
}

// ReadError reports the kind of a failed read pass and the slot it stopped at.
// errors.Is matches both Kind and the underlying cause.
type ReadError struct {
	Kind  error
	ID    model.RecordId
	HasID bool
	Err   error
}

func newReadError(kind error, err error) *ReadError {
	return &ReadError{Kind: kind, Err: err}
}

func newRecordError(kind error, id model.RecordId, err error) *ReadError {
	return &ReadError{Kind: kind, ID: id, HasID: true, Err: err}
}

func (e *ReadError) Error() string {
	if e.HasID {
		return fmt.Sprintf("%v: record %d: %v", e.Kind, e.ID, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
