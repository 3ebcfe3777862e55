package errors

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

const (
	STAGE_BEFORE_REQUEST = "before-request"
	STAGE_REQUEST        = "request"
	STAGE_AFTER_REQUEST  = "after-request"

	TYPE_UNKNOWN         = "unknown"
	TYPE_NOT_IMPLEMENTED = "not-implemented"
	TYPE_JSON_PARSE      = "json"
	TYPE_REQUEST_PREP    = "request-prep"
	TYPE_IO              = "io"
	TYPE_HTTP_STATUS     = "not-ok-http-status"
	TYPE_INVALID_DATA    = "invalid-data"

	KIND_VALIDATION        = "validation"
	KIND_NOT_FOUND         = "not-found"
	KIND_PERMISSION_DENIED = "permission-denied"
	KIND_RATE_LIMITED      = "rate-limited"
	KIND_BAD_REQUEST       = "bad-request"
	KIND_SERVER_ERROR      = "server-error"
	KIND_TRANSPORT         = "transport"
	KIND_UNKNOWN           = "unknown"

	HEADER_CORRELATION_ID = "X-Correlation-Id"

	// MaxMessageLength bounds messages and bodies echoed back to callers.
	MaxMessageLength = 500

	permissionHint = "check that the API client role grants access to this resource " +
		"(e.g. Projects & folders → List folders/projects, Data tables → Read/Write)"
)

type ApiError struct {
	Stage          string
	Type           string
	SourceErr      error
	Body           []byte
	HttpStatusCode int

	Method        string
	Url           string
	Headers       http.Header
	CorrelationId string
}

var _ error = &ApiError{}

// NewValidation returns an error for input rejected before any request is sent.
func NewValidation(format string, args ...any) *ApiError {
	return &ApiError{
		Stage:     STAGE_BEFORE_REQUEST,
		Type:      TYPE_INVALID_DATA,
		SourceErr: fmt.Errorf(format, args...),
	}
}

// Kind classifies the error by stage and HTTP status.
func (e *ApiError) Kind() string {
	if e.Stage == STAGE_BEFORE_REQUEST && e.Type == TYPE_INVALID_DATA {
		return KIND_VALIDATION
	}
	if e.Stage == STAGE_REQUEST && e.HttpStatusCode == 0 {
		return KIND_TRANSPORT
	}
	switch {
	case e.HttpStatusCode == http.StatusNotFound:
		return KIND_NOT_FOUND
	case e.HttpStatusCode == http.StatusForbidden:
		return KIND_PERMISSION_DENIED
	case e.HttpStatusCode == http.StatusTooManyRequests:
		return KIND_RATE_LIMITED
	case e.HttpStatusCode == http.StatusBadRequest:
		return KIND_BAD_REQUEST
	case e.HttpStatusCode >= 500:
		return KIND_SERVER_ERROR
	}
	return KIND_UNKNOWN
}

func (e *ApiError) Error() string {
	var err string
	if e.SourceErr != nil {
		err = e.SourceErr.Error()
	} else {
		err = Summarize(string(e.Body))
	}

	kind := e.Kind()
	if kind == KIND_VALIDATION {
		return fmt.Sprintf("invalid request: %s", err)
	}

	msg := fmt.Sprintf(
		"http request to Data Tables failed during '%s' stage with error type '%s' (%s), httpStatus: '%d', url: '%s %s', cid: '%s'; original err: %v",
		e.Stage, e.Type, kind, e.HttpStatusCode, e.Method, e.Url, e.CorrelationId, err,
	)
	if kind == KIND_PERMISSION_DENIED {
		msg += "; " + permissionHint
	}
	return msg
}

func (e *ApiError) Unwrap() error {
	return e.SourceErr
}

// Is method is required by errors.Is() to properly distinguish between
// different types -vs- same pointer to the same type.
// Without it, errors.Is(err, &ApiError{}) returns false:
// ok := errors.Is(errors.Join(&ApiError{}), &ApiError{})
// ^ would be false
func (e *ApiError) Is(other error) bool {
	var err *ApiError
	return errors.As(other, &err) && err != nil
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *ApiError
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.HttpStatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

func IsValidation(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr) && apiErr != nil && apiErr.Kind() == KIND_VALIDATION
}

var whitespace = regexp.MustCompile(`\s+`)

// Summarize collapses runs of whitespace and cuts s to MaxMessageLength runes.
func Summarize(s string) string {
	s = whitespace.ReplaceAllString(s, " ")
	r := []rune(s)
	if len(r) > MaxMessageLength {
		return string(r[:MaxMessageLength])
	}
	return s
}
