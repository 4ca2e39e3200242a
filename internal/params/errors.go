package params

import "errors"

var (
	// ErrSourceUnreadable indicates a file parameter whose source is missing
	// or cannot be opened or read.
	ErrSourceUnreadable = errors.New("parameter source unreadable")

	// ErrSinkWriteFailed indicates the destination writer rejected a write.
	ErrSinkWriteFailed = errors.New("parameter sink write failed")

	// ErrEmptyBaseString indicates a base string was requested from a list
	// with no parameters eligible for the signature base string.
	ErrEmptyBaseString = errors.New("no parameters eligible for the base string")

	// ErrUnsupportedEncoding indicates an unknown Encoding value.
	ErrUnsupportedEncoding = errors.New("unsupported parameter encoding")

	// ErrDispositionFixed is returned when the disposition of a parameter is
	// changed after the parameter has been serialized.
	ErrDispositionFixed = errors.New("disposition cannot change after serialization")
)
