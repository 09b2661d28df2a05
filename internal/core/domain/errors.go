package domain

import "errors"

// ErrorKind classifies failures so the transport layer can pick a status.
type ErrorKind int

const (
	// KindProcessing covers any failure opening or reading the raster.
	KindProcessing ErrorKind = iota
	// KindInput is a malformed or out-of-range request parameter.
	KindInput
	// KindConfiguration is a deployment problem, e.g. a raster in the wrong CRS.
	KindConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConfiguration:
		return "configuration"
	default:
		return "processing"
	}
}

// Error is a tagged domain error.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.Err }

// InputError reports invalid request parameters.
func InputError(msg string) error {
	return &Error{Kind: KindInput, Msg: msg}
}

// ConfigurationError reports a deployment or data setup problem.
func ConfigurationError(msg string) error {
	return &Error{Kind: KindConfiguration, Msg: msg}
}

// ProcessingError wraps a raster I/O failure, keeping its message.
func ProcessingError(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindProcessing, Err: err}
}

// KindOf returns the kind of err. Untagged errors are processing errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindProcessing
}
