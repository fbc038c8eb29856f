// Package apperr classifies the failures nuuslees can surface.
package apperr

import (
	"github.com/pkg/errors"
)

// Kind is the category of a failure
type Kind int

const (
	KindUnknown Kind = iota
	KindStorage
	KindNetwork
	KindFormat
	KindConfig
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage error"
	case KindNetwork:
		return "network error"
	case KindFormat:
		return "format error"
	case KindConfig:
		return "config error"
	case KindRender:
		return "render error"
	default:
		return "error"
	}
}

// Error is a categorized failure
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause walk through the category wrapper
func (e *Error) Cause() error {
	return e.Err
}

// New creates a categorized error with a message
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Err: errors.New(msg)}
}

// Errorf creates a categorized error with a formatted message
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// Wrap categorizes err and annotates it with msg. Returns nil if err is nil.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrap(err, msg)}
}

// Wrapf is Wrap with a formatted message
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrapf(err, format, args...)}
}

// KindOf returns the category of the outermost categorized error in the chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given category
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
