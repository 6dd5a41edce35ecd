package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ParameterParseError reports a key=value parameter block that is malformed
// or fails validation during post-processing.
type ParameterParseError struct {
	msg   string
	err   error
	attrs []slog.Attr
}

func newParameterError(msg string) *ParameterParseError {
	return &ParameterParseError{msg: msg}
}

func (e *ParameterParseError) Error() string {
	// Use the first available format:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *ParameterParseError) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer.
func (e *ParameterParseError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *ParameterParseError) Wrap(err error) *ParameterParseError {
	return &ParameterParseError{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With returns a copy of e with attrs appended.
func (e *ParameterParseError) With(attrs ...slog.Attr) *ParameterParseError {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &ParameterParseError{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Attrs returns the structured attributes attached to e.
func (e *ParameterParseError) Attrs() []slog.Attr { return e.attrs }

// DuplicateOptionError reports an option that may appear only once but was
// given again, on the command line or in an argument file.
type DuplicateOptionError struct {
	Option string
}

func (e *DuplicateOptionError) Error() string {
	return e.Option + " argument may not be specified more than once"
}

// LogValue implements slog.LogValuer.
func (e *DuplicateOptionError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Error()),
		slog.String("option", e.Option),
	)
}

const (
	msgKwArgFormat = `Argument parameter must follow the format "key=value"`

	msgRepeatedParameter = `Parameter "%s" may not be specified more than once`

	msgNoProviderConfig = "No master key provider configuration found"
	msgProviderCount    = `Exactly one "provider" must be provided for each ` +
		`master key provider configuration. %d provided`
	msgProviderKeys = `At least one "key" must be provided for each ` +
		`master key provider configuration`

	msgCachingRequired   = `If enabling caching, both "capacity" and "max_age" are required`
	msgCachingInvalidKey = `Invalid caching configuration key: "%s"`
	msgCachingValue      = `Invalid caching configuration value for "%s"`
)

var errArgFileCycle = errors.New("argument file includes itself")

// ArgFileError reports an argument file that could not be read or split.
type ArgFileError struct {
	Path string
	Line int
	Err  error
}

func (e *ArgFileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("argument file %s:%d: %v", e.Path, e.Line, e.Err)
	}

	return fmt.Sprintf("argument file %s: %v", e.Path, e.Err)
}

func (e *ArgFileError) Unwrap() error { return e.Err }
