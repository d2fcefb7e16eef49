// Package wkerr defines the single typed error used across every wkbparse
// package (cursor, ewkb, twkb, geojson, reproject) and re-exported at the
// root package for callers. A dedicated package avoids an import cycle:
// subpackages need to construct these errors, and the root package needs
// to import the subpackages.
package wkerr

import "fmt"

// ErrorKind discriminates the failure kinds a decode/encode/reproject call
// can return. Every call is all-or-nothing: no partial results are ever
// returned alongside an error.
type ErrorKind int

const (
	// ErrKindUnexpectedEOF means the input buffer was exhausted mid-field.
	ErrKindUnexpectedEOF ErrorKind = iota
	// ErrKindVarintOverflow means a TWKB varint exceeded 10 continuation
	// bytes or decoded past 64-bit range.
	ErrKindVarintOverflow
	// ErrKindUnknownEndianFlag means an EWKB endian byte was not 0 or 1.
	ErrKindUnknownEndianFlag
	// ErrKindUnknownGeometryType means a type code was outside 1..7 (EWKB)
	// or the TWKB 4-bit equivalent.
	ErrKindUnknownGeometryType
	// ErrKindInconsistentDimensions means a nested EWKB sub-geometry's Z/M
	// flags disagreed with the outer message's.
	ErrKindInconsistentDimensions
	// ErrKindUnexpectedSubGeometry means a MultiXxx container held an
	// element of the wrong base type.
	ErrKindUnexpectedSubGeometry
	// ErrKindInvalidGeoJSON means a value's shape did not match the
	// expected schema for its declared "type".
	ErrKindInvalidGeoJSON
	// ErrKindUnknownSRID means a TransformerFactory could not resolve an
	// SRID.
	ErrKindUnknownSRID
	// ErrKindMissingSourceSRID means reprojection was requested without a
	// resolvable source SRID (no override, no embedded SRID).
	ErrKindMissingSourceSRID
	// ErrKindReprojectionFailed means a Transformer rejected one or more
	// coordinates (e.g. out of the projection's domain).
	ErrKindReprojectionFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindUnexpectedEOF:
		return "UnexpectedEof"
	case ErrKindVarintOverflow:
		return "VarintOverflow"
	case ErrKindUnknownEndianFlag:
		return "UnknownEndianFlag"
	case ErrKindUnknownGeometryType:
		return "UnknownGeometryType"
	case ErrKindInconsistentDimensions:
		return "InconsistentDimensions"
	case ErrKindUnexpectedSubGeometry:
		return "UnexpectedSubGeometry"
	case ErrKindInvalidGeoJSON:
		return "InvalidGeoJson"
	case ErrKindUnknownSRID:
		return "UnknownSrid"
	case ErrKindMissingSourceSRID:
		return "MissingSourceSrid"
	case ErrKindReprojectionFailed:
		return "ReprojectionFailed"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by every wkbparse operation.
// Compare kinds with errors.Is against the sentinel Err* values below, or
// inspect Kind directly after errors.As.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("wkbparse: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel for the same Kind, so that
// errors.Is(err, wkbparse.ErrUnexpectedEOF) works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error of the given kind with a formatted message.
func New(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind, formatted message, and wrapped
// cause (retrievable via errors.Unwrap/errors.As).
func Wrap(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Sentinel errors, one per ErrorKind, for use with errors.Is.
var (
	ErrUnexpectedEOF          = &Error{Kind: ErrKindUnexpectedEOF}
	ErrVarintOverflow         = &Error{Kind: ErrKindVarintOverflow}
	ErrUnknownEndianFlag      = &Error{Kind: ErrKindUnknownEndianFlag}
	ErrUnknownGeometryType    = &Error{Kind: ErrKindUnknownGeometryType}
	ErrInconsistentDimensions = &Error{Kind: ErrKindInconsistentDimensions}
	ErrUnexpectedSubGeometry  = &Error{Kind: ErrKindUnexpectedSubGeometry}
	ErrInvalidGeoJSON         = &Error{Kind: ErrKindInvalidGeoJSON}
	ErrUnknownSRID            = &Error{Kind: ErrKindUnknownSRID}
	ErrMissingSourceSRID      = &Error{Kind: ErrKindMissingSourceSRID}
	ErrReprojectionFailed     = &Error{Kind: ErrKindReprojectionFailed}
)
