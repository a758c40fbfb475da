package intake

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrTimeout matches every TimeoutError via errors.Is.
var ErrTimeout = errors.New("request timed out")

// TimeoutError is returned when a request is aborted after the configured
// timeout. Its message is shown to the user as is.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Request timed out after %ss. Please try again.",
		strconv.FormatFloat(e.After.Seconds(), 'f', -1, 64))
}

// Is lets errors.Is(err, ErrTimeout) match.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// StatusError is returned for non-2xx responses. Message holds the server's
// "message" field when the body carried one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}
