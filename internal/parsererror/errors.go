// Package parsererror defines the validation errors raised while turning a
// command line into structured fields. None of them indicate corrupted state:
// every one is returned before the budget is touched.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError reports a field that was present but could not be converted,
// for example a non-numeric amount.
type ParseError struct {
	Command string
	Field   string
	Value   string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Command, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports malformed command text. Usage, when set, is the
// command's syntax line.
type ValidationError struct {
	Command string
	Reason  string
	Usage   string
}

func (e *ValidationError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s: %s. Use: %s", e.Command, e.Reason, e.Usage)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// MissingMarkersError lists every required marker absent from the input.
type MissingMarkersError struct {
	Command string
	Markers []string
}

func (e *MissingMarkersError) Error() string {
	return fmt.Sprintf("%s: missing required markers: %s",
		e.Command, strings.Join(e.Markers, ", "))
}

// MarkerOrderError reports the first pair of markers found out of order.
type MarkerOrderError struct {
	Command string
	First   string
	Second  string
}

func (e *MarkerOrderError) Error() string {
	return fmt.Sprintf("%s: marker %s must come before %s", e.Command, e.First, e.Second)
}

// EmptyFieldsError lists every required field that was blank after trimming.
type EmptyFieldsError struct {
	Command string
	Fields  []string
}

func (e *EmptyFieldsError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s",
		e.Command, strings.Join(e.Fields, ", "))
}

// RangeError reports a numeric field outside its inclusive bounds.
type RangeError struct {
	Command string
	Field   string
	Value   string
	Min     string
	Max     string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s must be between %s and %s, got %s",
		e.Command, e.Field, e.Min, e.Max, e.Value)
}

// UnknownCommandError is returned for an unrecognised verb.
type UnknownCommandError struct {
	Verb string
}

func (e *UnknownCommandError) Error() string {
	if e.Verb == "" {
		return "empty command. Enter 'help' for a list of commands"
	}
	return fmt.Sprintf("unknown command '%s'. Enter 'help' for a list of commands", e.Verb)
}

// IsValidation reports whether err (or anything it wraps) is one of the
// command validation errors defined in this package.
func IsValidation(err error) bool {
	var (
		parseErr   *ParseError
		validErr   *ValidationError
		missingErr *MissingMarkersError
		orderErr   *MarkerOrderError
		emptyErr   *EmptyFieldsError
		rangeErr   *RangeError
		unknownErr *UnknownCommandError
	)
	return errors.As(err, &parseErr) ||
		errors.As(err, &validErr) ||
		errors.As(err, &missingErr) ||
		errors.As(err, &orderErr) ||
		errors.As(err, &emptyErr) ||
		errors.As(err, &rangeErr) ||
		errors.As(err, &unknownErr)
}
