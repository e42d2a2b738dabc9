package github

import (
	"errors"
	"fmt"
)

// TransportError covers network failures, non-2xx statuses and responses
// that are not JSON
type TransportError struct {
	StatusCode  int    // 0 when no response was received
	ContentType string // as sent by the server
	Err         error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("search request failed: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("search request failed with status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("search request failed with status %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the body did not match the search response shape
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode search response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrUnexpectedContentType is wrapped by TransportError for non-JSON bodies
var ErrUnexpectedContentType = errors.New("unexpected content type")

// IsTransport reports whether err is a TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDecode reports whether err is a DecodeError
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
