package store

import (
	"encoding/json"
	"errors"
	"io/fs"

	"github.com/handiism/student-records/internal/model"
)

var (
	// ErrDuplicateID is returned when adding a student whose ID is already stored.
	ErrDuplicateID = errors.New("student ID must be unique")

	// ErrNotFound is returned when no student has the requested ID.
	ErrNotFound = errors.New("student not found")

	// ErrNoRecords is returned by listing and reporting operations on an empty store.
	ErrNoRecords = errors.New("no student records found")

	// ErrInvalidFileName is returned by Save and Load before any I/O when the
	// file name does not end with RecordFileExt or has nothing before it.
	ErrInvalidFileName = errors.New("filename must end with '.json' and can not be empty")

	// ErrMalformedRecord is returned by Load when a record lacks a required key
	// or the document is not an array of records.
	ErrMalformedRecord = errors.New("malformed record")
)

// Kind classifies errors for display.
type Kind int

const (
	// KindUnexpected is anything the store does not recognise.
	KindUnexpected Kind = iota

	// KindValidation covers operator input the store refused.
	KindValidation

	// KindIO covers file system and decoding failures.
	KindIO

	// KindNotFound covers lookups with no result, including an empty store.
	KindNotFound
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	case KindNotFound:
		return "not found"
	default:
		return "unexpected"
	}
}

// OpError records the store operation that failed and why.
type OpError struct {
	Op   string // "add", "find", "save", ...
	Path string // file involved, if any
	Err  error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Path != "" {
		return e.Op + " " + e.Path + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// Cause strips the *OpError wrapper, if any.
func Cause(err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Err
	}
	return err
}

// KindOf classifies err. A nil error is KindUnexpected.
func KindOf(err error) Kind {
	var (
		pathErr   *fs.PathError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case err == nil:
		return KindUnexpected
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoRecords):
		return KindNotFound
	case errors.Is(err, ErrDuplicateID),
		errors.Is(err, ErrInvalidFileName),
		errors.Is(err, model.ErrMarkNotInteger),
		errors.Is(err, model.ErrNegativeMark),
		errors.Is(err, model.ErrMarkTooHigh):
		return KindValidation
	case errors.Is(err, ErrMalformedRecord),
		errors.As(err, &pathErr),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		return KindIO
	default:
		return KindUnexpected
	}
}
