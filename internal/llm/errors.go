package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies provider failures for retry decisions.
type ErrorKind int

const (
	KindUnavailable     ErrorKind = iota // network failure or 5xx
	KindRateLimit                        // 429
	KindInvalidResponse                  // output did not match the schema
	KindTruncated                        // output hit MaxTokens
	KindRejected                         // 4xx other than 429; retrying will not help
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRateLimit:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error is returned by providers for every failed request.
type Error struct {
	Kind       ErrorKind
	RetryAfter time.Duration
	Content    []byte // raw output, for invalid or truncated responses
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindUnavailable when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}

// errorFromStatus classifies an HTTP status returned by an SDK.
func errorFromStatus(status int, err error) *Error {
	switch {
	case status == 429:
		return &Error{Kind: KindRateLimit, Err: err}
	case status >= 400 && status < 500:
		return &Error{Kind: KindRejected, Err: err}
	default:
		return &Error{Kind: KindUnavailable, Err: err}
	}
}
