package errors

import (
	stdErrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig   Kind = "invalid_config"
	NotFound        Kind = "not_found"
	SampleNotFound  Kind = "sample_not_found"
	PairingMismatch Kind = "pairing_mismatch"
	AmbiguousMatch  Kind = "ambiguous_match"
	IOFailure       Kind = "io_failure"
	Internal        Kind = "internal"
)

type AppError struct {
	Kind   Kind
	Op     string
	Path   string
	Sample string
	Err    error
}

func (e *AppError) Error() string {
	prefix := e.Op
	if e.Sample != "" {
		prefix = fmt.Sprintf("%s: sample %s", prefix, e.Sample)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// ForSample builds an error attributed to one sample.
func ForSample(kind Kind, op, sample string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind:   kind,
		Op:     op,
		Sample: sample,
		Err:    err,
	}
}

// KindOf returns the Kind of the first AppError in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	var appErr *AppError
	return stdErrors.As(err, &appErr) && appErr.Kind == kind
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stdErrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case SampleNotFound, PairingMismatch:
		return fmt.Sprintf("Sample %s: %v", appErr.Sample, appErr.Err)
	case AmbiguousMatch:
		return fmt.Sprintf("Ambiguous sample match: %v", appErr.Err)
	case IOFailure:
		if appErr.Sample != "" {
			return fmt.Sprintf("I/O error for sample %s: %s: %v", appErr.Sample, appErr.Path, appErr.Err)
		}
		return fmt.Sprintf("I/O error: %s: %v", appErr.Path, appErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
