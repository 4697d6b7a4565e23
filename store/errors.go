package store

import (
	"errors"
	"fmt"
)

// Kind classifies the errors returned by this package.
type Kind int

const (
	// KindUnknown is reported by KindOf for errors not produced by this package.
	KindUnknown Kind = iota
	InvalidKey
	InvalidNameFormat
	InvalidNameChars
	InvalidLevel
	DuplicateKey
	IndexOutOfRange
	NotFound
)

var (
	// ErrInvalidKey is returned when a key is empty, longer than 15 bytes, or
	// contains a byte outside [A-Za-z0-9_-].
	ErrInvalidKey = errors.New("roster: invalid record key")

	// ErrInvalidNameFormat is returned when a name is empty, too long, or has
	// no second space-separated token.
	ErrInvalidNameFormat = errors.New("roster: name has no second token")

	// ErrInvalidNameChars is returned when the second name token contains a
	// non-alphabetic byte.
	ErrInvalidNameChars = errors.New("roster: invalid character in second name")

	// ErrInvalidLevel is returned for a level outside Undergraduate..Doctoral.
	ErrInvalidLevel = errors.New("roster: invalid level")

	// ErrDuplicateKey is returned when appending a record whose key is already stored.
	ErrDuplicateKey = errors.New("roster: duplicate record key")

	// ErrIndexOutOfRange is returned for a score or sort component index out of bounds.
	ErrIndexOutOfRange = errors.New("roster: index out of range")

	// ErrNotFound is returned when a lookup by key or position finds nothing.
	ErrNotFound = errors.New("roster: record not found")
)

var sentinels = map[Kind]error{
	InvalidKey:        ErrInvalidKey,
	InvalidNameFormat: ErrInvalidNameFormat,
	InvalidNameChars:  ErrInvalidNameChars,
	InvalidLevel:      ErrInvalidLevel,
	DuplicateKey:      ErrDuplicateKey,
	IndexOutOfRange:   ErrIndexOutOfRange,
	NotFound:          ErrNotFound,
}

func (k Kind) String() string {
	switch k {
	case InvalidKey:
		return "InvalidKey"
	case InvalidNameFormat:
		return "InvalidNameFormat"
	case InvalidNameChars:
		return "InvalidNameChars"
	case InvalidLevel:
		return "InvalidLevel"
	case DuplicateKey:
		return "DuplicateKey"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Error is the error value returned by every fallible operation in this package.
//
// Callers branch on Kind, or use errors.Is with the matching sentinel:
//
//	if errors.Is(err, store.ErrDuplicateKey) { ... }
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	sentinel := sentinels[e.Kind]
	if sentinel == nil {
		return "roster: " + e.Msg
	}
	if e.Msg == "" {
		return sentinel.Error()
	}
	return fmt.Sprintf("%s: %s", sentinel, e.Msg)
}

// Is reports whether target is the sentinel for e's kind, or an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Kind == e.Kind
	}
	return sentinels[e.Kind] == target
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for k, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return k
		}
	}
	return KindUnknown
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
