package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/chargedcycleworks/service-intake/pkg/clients/intake"
	"github.com/chargedcycleworks/service-intake/pkg/document"
	"github.com/chargedcycleworks/service-intake/pkg/models"
	"github.com/chargedcycleworks/service-intake/pkg/session"
	"github.com/chargedcycleworks/service-intake/pkg/signature"
	"github.com/chargedcycleworks/service-intake/pkg/utils"
)

// User-facing messages.
const (
	MsgSignatureRequired = "Please provide your signature before submitting."
	MsgRejected          = "An error occurred while submitting the form. Please try again."
	MsgNetwork           = "Unable to submit form. Please check your connection and try again."
)

// ErrBusy is returned when a submission is already in flight for the session.
var ErrBusy = errors.New("submission already in progress")

// SubmissionService defines the interface for submitting an intake session
type SubmissionService interface {
	Submit(ctx context.Context, s *session.Session) error
}

type submissionServiceImpl struct {
	client   intake.Client
	composer *document.Composer
	render   func(*document.Document) ([]byte, error)
	now      func() time.Time
}

// Option customizes the submission service.
type Option func(*submissionServiceImpl)

// WithRenderer replaces document.Render.
func WithRenderer(render func(*document.Document) ([]byte, error)) Option {
	return func(s *submissionServiceImpl) { s.render = render }
}

// WithClock replaces time.Now for the submittedAt stamp.
func WithClock(now func() time.Time) Option {
	return func(s *submissionServiceImpl) { s.now = now }
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(client intake.Client, composer *document.Composer, opts ...Option) SubmissionService {
	s := &submissionServiceImpl{
		client:   client,
		composer: composer,
		render:   document.Render,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the session, builds the PDF and payload from one snapshot
// and posts them. Every failure is also written to the session's error
// message; on success the session shows its confirmation.
func (s *submissionServiceImpl) Submit(ctx context.Context, sess *session.Session) error {
	if sess.IsSubmitting() {
		return ErrBusy
	}

	sess.ClearError()
	sess.MarkSubmitAttempted()

	pad := sess.Signature()
	if pad.IsEmpty() {
		return fail(sess, &SubmitError{Kind: KindPrecondition, Message: MsgSignatureRequired})
	}

	snapshot, result := sess.Snapshot()
	if !result.Valid() {
		return fail(sess, &SubmitError{Kind: KindPrecondition, Message: fixErrorsMessage(result.Count())})
	}

	if !sess.BeginSubmit() {
		return ErrBusy
	}
	defer sess.EndSubmit()

	attemptID := uuid.NewString()
	log := utils.Logger.WithFields(logrus.Fields{
		"attempt_id": attemptID,
		"phone_hash": utils.HashPhone(snapshot.Phone),
	})
	log.Info("Processing service intake submission")

	sigPNG, err := pad.ExportPNG()
	if err != nil {
		log.Errorf("Error exporting signature: %v", err)
		return fail(sess, &SubmitError{Kind: KindTransport, Message: MsgNetwork, AttemptID: attemptID, Err: err})
	}

	pdf, err := s.buildPDF(snapshot, sigPNG)
	if err != nil {
		log.Errorf("Error building document: %v", err)
		return fail(sess, &SubmitError{Kind: KindTransport, Message: MsgNetwork, AttemptID: attemptID, Err: err})
	}

	payload := models.NewSubmissionPayload(snapshot, signature.EncodeDataURL(sigPNG), s.now())

	resp, err := s.client.SubmitServiceIntake(ctx, payload, pdf)
	if err != nil {
		serr := classify(err)
		serr.AttemptID = attemptID
		log.WithField("kind", serr.Kind).Errorf("Submission failed: %v", err)
		return fail(sess, serr)
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = MsgRejected
		}
		log.Warnf("Submission rejected: %s", resp.Message)
		return fail(sess, &SubmitError{Kind: KindRejected, Message: msg, AttemptID: attemptID})
	}

	log.Info("Submission accepted")
	sess.ConfirmSuccess()
	return nil
}

// buildPDF composes and renders the document. A panic in either step is
// returned as an error.
func (s *submissionServiceImpl) buildPDF(f models.FormState, sigPNG []byte) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic building document: %v", r)
		}
	}()

	doc, err := s.composer.Compose(f, sigPNG)
	if err != nil {
		return nil, fmt.Errorf("error composing document: %w", err)
	}
	pdf, err = s.render(doc)
	if err != nil {
		return nil, fmt.Errorf("error rendering document: %w", err)
	}
	return pdf, nil
}

func classify(err error) *SubmitError {
	var timeoutErr *intake.TimeoutError
	if errors.As(err, &timeoutErr) {
		return &SubmitError{Kind: KindTimeout, Message: timeoutErr.Error(), Err: err}
	}
	var statusErr *intake.StatusError
	if errors.As(err, &statusErr) {
		msg := statusErr.Message
		if msg == "" {
			msg = MsgRejected
		}
		return &SubmitError{Kind: KindTransport, Message: msg, Err: err}
	}
	return &SubmitError{Kind: KindTransport, Message: MsgNetwork, Err: err}
}

func fail(sess *session.Session, err *SubmitError) error {
	sess.SetError(err.Message)
	return err
}

func fixErrorsMessage(n int) string {
	noun := "errors"
	if n == 1 {
		noun = "error"
	}
	return fmt.Sprintf("Please fix %d %s before submitting.", n, noun)
}
