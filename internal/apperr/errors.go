// Package apperr defines the shared error taxonomy for the pipeline.
// Every component wraps backend and library failures into exactly one of
// these kinds at its own boundary; untyped errors never cross a component
// boundary. The CLI is the single place that turns a typed error into a
// user-facing message and exit code.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure into a remediation class.
type Kind int

const (
	KindUnknown Kind = iota
	KindRecording
	KindTranscription
	KindSummarization
	KindAPI
	KindFile
)

// Error is a classified pipeline failure, optionally wrapping a cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Recording reports a capture device or utility failure.
func Recording(format string, args ...interface{}) error {
	return &Error{Kind: KindRecording, Msg: fmt.Sprintf(format, args...)}
}

// Transcription reports a conversion or speech-to-text failure.
func Transcription(format string, args ...interface{}) error {
	return &Error{Kind: KindTranscription, Msg: fmt.Sprintf(format, args...)}
}

// Summarization reports a summarization backend failure.
func Summarization(format string, args ...interface{}) error {
	return &Error{Kind: KindSummarization, Msg: fmt.Sprintf(format, args...)}
}

// API reports a missing credential or a rejected remote call. Kept
// distinct from the generic backend kinds so callers can prompt for
// configuration specifically.
func API(format string, args ...interface{}) error {
	return &Error{Kind: KindAPI, Msg: fmt.Sprintf(format, args...)}
}

// File reports a missing or unreadable input/output path.
func File(format string, args ...interface{}) error {
	return &Error{Kind: KindFile, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, preserving the cause for errors.Is/As.
// A nil err returns nil. An already classified err keeps its kind.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the classification of err, or KindUnknown.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// UserMessage renders a classified error as the message shown to the
// operator.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindTranscription:
		return fmt.Sprintf("Transcription failed: %v", err)
	case KindSummarization:
		return fmt.Sprintf("Summarization failed: %v", err)
	case KindRecording:
		return fmt.Sprintf("Recording failed: %v", err)
	case KindAPI:
		return fmt.Sprintf("API error: %v", err)
	case KindFile:
		return fmt.Sprintf("File error: %v", err)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}
