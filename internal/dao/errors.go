package dao

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes for the write rejections a collection can produce.
const (
	CodeDuplicateKey     = 11000
	CodeValidationFailed = 121
)

// WriteError is a store rejection of a single write. Error() returns the store's
// message unchanged and Unwrap exposes the underlying driver error, if any.
type WriteError struct {
	Collection string
	Code       int
	Message    string
	err        error
}

func (e *WriteError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.Message
}

func (e *WriteError) Unwrap() error { return e.err }

// IsDuplicateKey reports whether err is a uniqueness violation.
func IsDuplicateKey(err error) bool {
	var we *WriteError
	if errors.As(err, &we) {
		return we.Code == CodeDuplicateKey || we.Code == 11001 || we.Code == 12582
	}
	return mongo.IsDuplicateKeyError(err)
}

// IsValidationFailure reports whether err is a schema rejection (type mismatch
// or missing required field).
func IsValidationFailure(err error) bool {
	var we *WriteError
	return errors.As(err, &we) && we.Code == CodeValidationFailed
}

// asWriteError converts a driver write exception into a *WriteError. Anything
// else (network, context) is returned unchanged.
func asWriteError(collection string, err error) error {
	var wex mongo.WriteException
	if errors.As(err, &wex) {
		we := &WriteError{Collection: collection, err: err}
		if len(wex.WriteErrors) > 0 {
			we.Code = wex.WriteErrors[0].Code
			we.Message = wex.WriteErrors[0].Message
		} else if wex.WriteConcernError != nil {
			we.Code = wex.WriteConcernError.Code
			we.Message = wex.WriteConcernError.Message
		}
		return we
	}
	return err
}
