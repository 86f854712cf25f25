package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a feed request failed.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidMethod
	KindInvalidPath
	KindUpstreamRejected
	KindUpstreamUnreachable
	KindGenerationFailure
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindInvalidMethod:
		return "invalid_method"
	case KindInvalidPath:
		return "invalid_path"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindUpstreamUnreachable:
		return "upstream_unreachable"
	case KindGenerationFailure:
		return "generation_failure"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
//
// Message is written to the client as is. Err is the internal cause and
// only ever goes to the log.
type ErrorWithStatusCode struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.Err
}

const (
	MsgInvalidMethod     = "Only GET is supported"
	MsgInvalidPath       = "Unsupported request path, expects valid MusicThread thread path"
	MsgUpstreamFailure   = "Failed to fetch response from MusicThread"
	MsgGenerationFailure = "Failed to generate feed for MusicThread thread"
	MsgRateLimited       = "Rate limit exceeded, try again later"
	MsgInternal          = "Internal server error"
)

func InvalidMethod(method string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Kind:       KindInvalidMethod,
		Message:    MsgInvalidMethod,
		StatusCode: http.StatusBadRequest,
		Err:        fmt.Errorf("method %s not allowed", method),
	}
}

// InvalidPath uses statusCode when it is a 4xx code, 404 otherwise.
func InvalidPath(path string, statusCode int) *ErrorWithStatusCode {
	if statusCode < 400 || statusCode > 499 {
		statusCode = http.StatusNotFound
	}
	return &ErrorWithStatusCode{
		Kind:       KindInvalidPath,
		Message:    MsgInvalidPath,
		StatusCode: statusCode,
		Err:        fmt.Errorf("unsupported path %q", path),
	}
}

// UpstreamRejected carries the upstream status. upstreamMsg is appended in
// parentheses when non-empty.
func UpstreamRejected(statusCode int, upstreamMsg string) *ErrorWithStatusCode {
	msg := MsgUpstreamFailure
	if upstreamMsg != "" {
		msg = msg + " (" + upstreamMsg + ")"
	}
	return &ErrorWithStatusCode{
		Kind:       KindUpstreamRejected,
		Message:    msg,
		StatusCode: statusCode,
	}
}

func UpstreamUnreachable(cause error) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Kind:       KindUpstreamUnreachable,
		Message:    MsgUpstreamFailure,
		StatusCode: http.StatusInternalServerError,
		Err:        cause,
	}
}

func GenerationFailure(cause error) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Kind:       KindGenerationFailure,
		Message:    MsgGenerationFailure,
		StatusCode: http.StatusInternalServerError,
		Err:        cause,
	}
}

func RateLimited(client string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Kind:       KindRateLimited,
		Message:    MsgRateLimited,
		StatusCode: http.StatusTooManyRequests,
		Err:        fmt.Errorf("client %s exceeded its request rate", client),
	}
}

// KindOf returns the Kind of the first ErrorWithStatusCode in err's chain,
// KindInternal if there is none.
func KindOf(err error) Kind {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
