// Package session holds the state of one intake form while a customer fills
// it in: field values, the signature, error visibility and the flags the
// submission workflow drives.
//
// A Session is driven by a single event loop and is not safe for concurrent
// use.
package session

import (
	"fmt"
	"time"

	"github.com/chargedcycleworks/service-intake/pkg/config"
	"github.com/chargedcycleworks/service-intake/pkg/models"
	"github.com/chargedcycleworks/service-intake/pkg/normalize"
	"github.com/chargedcycleworks/service-intake/pkg/signature"
	"github.com/chargedcycleworks/service-intake/pkg/validation"
	"github.com/chargedcycleworks/service-intake/pkg/visibility"
)

// Session is one customer's pass through the intake form.
type Session struct {
	form       models.FormState
	engine     *validation.Engine
	states     *config.StateSet
	visibility *visibility.Policy
	capture    *signature.Capture
	now        func() time.Time

	printedNameEdited bool
	showSuggestions   bool

	submitting       bool
	errorMessage     string
	showConfirmation bool
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	now       func() time.Time
	container signature.Container
}

// WithClock replaces time.Now for the default signature date.
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) { o.now = now }
}

// WithContainer sizes the signature surface from c.
func WithContainer(c signature.Container) Option {
	return func(o *sessionOptions) { o.container = c }
}

// New starts a blank session.
func New(engine *validation.Engine, states *config.StateSet, opts ...Option) *Session {
	o := sessionOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		form:       models.NewFormState(o.now()),
		engine:     engine,
		states:     states,
		visibility: visibility.New(),
		capture:    signature.NewCapture(o.container),
		now:        o.now,
	}
}

// Form returns a copy of the current values.
func (s *Session) Form() models.FormState {
	return s.form
}

// SetField applies the field's normalizer and stores the result. Editing the
// printed name stops it from following the full name.
func (s *Session) SetField(field, value string) error {
	value = normalize.ForField(field)(value)
	if err := s.form.Set(field, value); err != nil {
		return err
	}

	switch field {
	case models.FieldFirstName, models.FieldLastName:
		s.syncPrintedName()
	case models.FieldPrintedName:
		s.printedNameEdited = true
	case models.FieldState:
		s.showSuggestions = true
	}
	return nil
}

// Value returns the current value of a text field.
func (s *Session) Value(field string) (string, error) {
	return s.form.Get(field)
}

func (s *Session) syncPrintedName() {
	if s.printedNameEdited {
		return
	}
	if full := models.FullName(s.form); full != "" {
		s.form.PrintedName = full
	}
}

// SetDisclosure toggles a section A checkbox.
func (s *Session) SetDisclosure(name string, checked bool) error {
	return s.form.SetDisclosure(name, checked)
}

// Blur marks a field as touched. Leaving the state field hides its
// suggestion list.
func (s *Session) Blur(field string) {
	s.visibility.Blur(field)
	if field == models.FieldState {
		s.showSuggestions = false
	}
}

// FocusState opens the state suggestion list.
func (s *Session) FocusState() {
	s.showSuggestions = true
}

// Suggestions returns the states matching the current state input, or nil
// while the list is hidden.
func (s *Session) Suggestions() []config.State {
	if !s.showSuggestions {
		return nil
	}
	return s.states.Suggest(s.form.State)
}

// SelectState picks a suggestion and closes the list.
func (s *Session) SelectState(abbr string) error {
	if !s.states.Contains(abbr) {
		return fmt.Errorf("unknown state %q", abbr)
	}
	s.form.State = normalize.State(abbr)
	s.showSuggestions = false
	return nil
}

// FullName is derived from the current first and last names.
func (s *Session) FullName() string {
	return models.FullName(s.form)
}

// Errors validates the current values.
func (s *Session) Errors() validation.Result {
	return s.engine.Validate(s.form)
}

// Snapshot returns a copy of the values together with their validation
// result.
func (s *Session) Snapshot() (models.FormState, validation.Result) {
	f := s.form
	return f, s.engine.Validate(f)
}

// VisibleErrors returns the errors the user should currently see.
func (s *Session) VisibleErrors() map[string]string {
	return s.visibility.Filter(s.Errors())
}

// FieldError returns the visible error for one field, or "".
func (s *Session) FieldError(field string) string {
	if !s.visibility.Visible(field) {
		return ""
	}
	return s.Errors()[field]
}

// FieldState returns the visibility state of a field.
func (s *Session) FieldState(field string) visibility.State {
	return s.visibility.State(field)
}

// AllPristine reports whether no error is visible anywhere yet.
func (s *Session) AllPristine() bool {
	return s.visibility.AllPristine()
}

// Signature returns the drawing surface.
func (s *Session) Signature() *signature.Pad {
	return s.capture.Pad()
}

// ClearSignature wipes the strokes.
func (s *Session) ClearSignature() {
	s.capture.Pad().Clear()
}

// AttachResize keeps the signature across resizes delivered by n until the
// returned func or Close is called.
func (s *Session) AttachResize(n signature.ResizeNotifier) (detach func()) {
	return s.capture.Attach(n)
}

// Close releases the resize subscription.
func (s *Session) Close() {
	s.capture.Detach()
}

// IsSubmitting reports whether a submission is in flight.
func (s *Session) IsSubmitting() bool { return s.submitting }

// ErrorMessage is the top-level message shown above the form.
func (s *Session) ErrorMessage() string { return s.errorMessage }

// ShowConfirmation reports whether the success confirmation is displayed.
func (s *Session) ShowConfirmation() bool { return s.showConfirmation }

// MarkSubmitAttempted makes every field error visible.
func (s *Session) MarkSubmitAttempted() {
	s.visibility.AttemptSubmit()
}

// SetError sets the top-level message.
func (s *Session) SetError(msg string) {
	s.errorMessage = msg
}

// ClearError removes the top-level message.
func (s *Session) ClearError() {
	s.errorMessage = ""
}

// BeginSubmit sets the busy flag. It returns false if it was already set.
func (s *Session) BeginSubmit() bool {
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

// EndSubmit clears the busy flag.
func (s *Session) EndSubmit() {
	s.submitting = false
}

// ConfirmSuccess shows the confirmation. The form keeps its values until the
// confirmation is dismissed.
func (s *Session) ConfirmSuccess() {
	s.showConfirmation = true
}

// Dismiss acknowledges the confirmation and starts a fresh form.
func (s *Session) Dismiss() {
	s.Reset()
}

// Reset returns the session to a blank form dated today.
func (s *Session) Reset() {
	s.form = models.NewFormState(s.now())
	s.capture.Pad().Clear()
	s.visibility.Reset()
	s.printedNameEdited = false
	s.showSuggestions = false
	s.errorMessage = ""
	s.showConfirmation = false
}
