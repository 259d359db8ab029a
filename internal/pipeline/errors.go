package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"

	"storescrape/internal/crawler"
	"storescrape/internal/normalizer"
	"storescrape/internal/schedule"
	"storescrape/pkg/utils"
)

// Kind is the class of a recoverable pipeline failure.
type Kind string

// Recoverable failure kinds.
const (
	ConnectivityError     Kind = "ConnectivityError"
	MalformedRequestError Kind = "MalformedRequestError"
	TypeValidationError   Kind = "TypeValidationError"
	PersistenceError      Kind = "PersistenceError"
)

// Error is a classified failure. Callers match on Kind.
type Error struct {
	Kind  Kind
	Stage State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s while %s: %v", e.Kind, e.Stage, e.Err)
}

// Unwrap returns the underlying fault.
func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the human-readable description of the underlying fault.
func (e *Error) Message() string {
	return e.Err.Error()
}

// classify tags err with a Kind. It reports false for faults outside the
// taxonomy; those must stop the run.
func classify(stage State, err error) (*Error, bool) {
	kind, ok := kindOf(err)
	if !ok {
		return nil, false
	}

	return &Error{Kind: kind, Stage: stage, Err: err}, true
}

func kindOf(err error) (Kind, bool) {
	var (
		urlErr  *url.Error
		netErr  net.Error
		pathErr *fs.PathError
		linkErr *os.LinkError
		typeErr *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return "", false

	case errors.Is(err, utils.ErrMissingScheme),
		errors.Is(err, utils.ErrInvalidURL):
		return MalformedRequestError, true

	case errors.Is(err, utils.ErrTypeMismatch),
		errors.Is(err, crawler.ErrElementMissing),
		errors.Is(err, normalizer.ErrInvalidRecord),
		errors.Is(err, schedule.ErrUnknownDay),
		errors.As(err, &typeErr):
		return TypeValidationError, true

	case errors.As(err, &pathErr),
		errors.As(err, &linkErr),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return PersistenceError, true

	case errors.Is(err, crawler.ErrUnexpectedStatusCode),
		errors.As(err, &urlErr),
		errors.As(err, &netErr):
		return ConnectivityError, true
	}

	return "", false
}
