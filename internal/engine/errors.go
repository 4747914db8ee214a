package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/matcha/internal/value"
)

// UsageError reports a rule-authoring mistake: the rule itself is
// malformed, not the input. Usage errors terminate the whole session and
// are never recovered by alternation.
//
// Match failures are not errors at all; they are the Failure variant of
// Result and are handled by the block sequencer.
type UsageError struct {
	// Code identifies the error category.
	Code UsageErrorCode

	// Message is a human-readable description.
	Message string

	// Word is the offending keyword or rule element, when known.
	Word string
}

// UsageErrorCode categorizes usage errors.
type UsageErrorCode string

const (
	// ErrCodeUnknownWord indicates a rule word that is neither a
	// registered combinator nor a bound sub-rule.
	ErrCodeUnknownWord UsageErrorCode = "UNKNOWN_WORD"

	// ErrCodeBadElement indicates a rule element of a kind no combinator
	// is registered for.
	ErrCodeBadElement UsageErrorCode = "BAD_RULE_ELEMENT"

	// ErrCodeMissingArg indicates a keyword at the end of a rule block
	// with declared parameters still unconsumed.
	ErrCodeMissingArg UsageErrorCode = "MISSING_ARGUMENT"

	// ErrCodeBadArg indicates a rule argument of the wrong kind.
	ErrCodeBadArg UsageErrorCode = "BAD_ARGUMENT"

	// ErrCodeKeepOutsideCollect indicates keep with no active collect.
	ErrCodeKeepOutsideCollect UsageErrorCode = "KEEP_OUTSIDE_COLLECT"

	// ErrCodeInvisibleValue indicates a value-requiring combinator
	// (set-word, emit, change, insert) wrapping a value-less sub-rule.
	ErrCodeInvisibleValue UsageErrorCode = "INVISIBLE_VALUE"

	// ErrCodeForeignSeries indicates a seek target positioned in a
	// different series than the one being parsed.
	ErrCodeForeignSeries UsageErrorCode = "FOREIGN_SERIES"

	// ErrCodeBadSeek indicates a seek value that is neither an integer
	// nor a position, or an out-of-range index.
	ErrCodeBadSeek UsageErrorCode = "BAD_SEEK"

	// ErrCodeEvaluation indicates a group or native call that failed in
	// host code.
	ErrCodeEvaluation UsageErrorCode = "EVALUATION"

	// ErrCodeMutation indicates a change/insert replacement the series
	// storage cannot hold.
	ErrCodeMutation UsageErrorCode = "MUTATION"
)

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("%s: %s (word=%s)", e.Code, e.Message, e.Word)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUsageError reports whether err is (or wraps) a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

func usageErrorf(code UsageErrorCode, word string, format string, args ...any) *UsageError {
	return &UsageError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Word:    word,
	}
}

// returnSignal unwinds the session when the return combinator fires. It
// travels the error path but reports success with an override value.
type returnSignal struct {
	val value.Value
	at  int
}

func (s *returnSignal) Error() string {
	return "parse returned: " + value.Mold(s.val)
}
