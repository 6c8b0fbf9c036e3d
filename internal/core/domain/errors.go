package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedMediaType indicates a document format no decoder handles.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrDecode indicates a recognised document could not be decoded
	// (corrupt archive, malformed markup, unreadable stream).
	ErrDecode = errors.New("document decode failed")

	// ErrModelCall indicates the extraction model could not be reached
	// or rejected the request (network, auth, rate limit). Distinct from
	// a malformed model response, which is recovered locally.
	ErrModelCall = errors.New("model call failed")

	// OAuth flow errors.

	// ErrInvalidState indicates the callback state parameter was absent,
	// expired, or did not match the value issued at flow start.
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrExchangeFailed indicates the provider rejected the code exchange
	// or returned no access token.
	ErrExchangeFailed = errors.New("token exchange failed")

	// ErrUnauthenticated indicates no valid workspace credentials exist
	// for the session.
	ErrUnauthenticated = errors.New("not authenticated")
)

// ProviderError is one entry of the workspace API's error array.
type ProviderError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ExternalAPIError reports a workspace API rejection. The provider can
// return application errors inside an HTTP 200 response, so StatusCode
// may be 200 while Errors is non-empty.
type ExternalAPIError struct {
	// StatusCode is the transport-level HTTP status.
	StatusCode int

	// Errors is the provider's structured error list, if any.
	Errors []ProviderError
}

// Error implements the error interface.
func (e *ExternalAPIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("workspace api error (status %d)", e.StatusCode)
	}
	msgs := make([]string, len(e.Errors))
	for i, pe := range e.Errors {
		msgs[i] = pe.Message
	}
	return fmt.Sprintf("workspace api error (status %d): %s", e.StatusCode, strings.Join(msgs, "; "))
}
