package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// reportableScheme tags safe-detail payloads that carry a JSON-encoded
// detail map. NewErrorResponse strips it back off.
const reportableScheme = "__json__:"

// ErrorBuilder accumulates an error fluently. It is not itself an error:
// the chain must end with Mark, which applies the sentinel and returns
// the finished error.
type ErrorBuilder struct {
	err error
}

// NewError starts a chain from a fresh message
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a chain from an existing cause
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithHint attaches the user-facing message. Hints are the only part of
// an error shown to clients verbatim.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches a structured detail map that is safe to
// return to clients. Unmarshalable maps are dropped silently.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, reportableScheme+"%s", errors.Safe(string(marshaled)))
	return b
}

// Mark applies the sentinel and ends the chain
func (b *ErrorBuilder) Mark(sentinel error) error {
	return errors.Mark(b.err, sentinel)
}
