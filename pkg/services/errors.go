package services

import "fmt"

// Kind classifies a failed submission.
type Kind int

const (
	// KindPrecondition: missing signature or invalid fields. Nothing was sent.
	KindPrecondition Kind = iota + 1
	// KindTimeout: the backend did not answer within the configured timeout.
	KindTimeout
	// KindTransport: network failure, non-2xx status, unreadable response, or
	// a failure preparing the document.
	KindTransport
	// KindRejected: the backend answered success=false.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// SubmitError carries the message shown to the user alongside the
// underlying cause.
type SubmitError struct {
	Kind      Kind
	Message   string
	AttemptID string
	Err       error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
