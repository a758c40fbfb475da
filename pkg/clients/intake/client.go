// Package intake talks to the service-intake backend over HTTP.
package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/chargedcycleworks/service-intake/pkg/models"
	"github.com/chargedcycleworks/service-intake/pkg/utils"
)

const (
	runTaskPath = "/run-task"
	healthPath  = "/api/health"

	testMessage = "Simple test from frontend"
)

// Client defines the interface for talking to the intake backend
type Client interface {
	SubmitServiceIntake(ctx context.Context, payload models.SubmissionPayload, pdf []byte) (*models.SubmitResponse, error)
	SubmitTest(ctx context.Context) (*models.SubmitResponse, error)
	HealthCheck(ctx context.Context) (models.HealthStatus, error)
}

type clientImpl struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	now     func() time.Time
}

// Option customizes a Client.
type Option func(*clientImpl)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientImpl) { c.http = hc }
}

// WithClock replaces time.Now for PDF file names.
func WithClock(now func() time.Time) Option {
	return func(c *clientImpl) { c.now = now }
}

// NewClient creates a new intake backend client. Every request is aborted
// after timeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) Client {
	c := &clientImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileName is the name the PDF part is uploaded under.
func FileName(lastName string, at time.Time) string {
	return fmt.Sprintf("service_intake_%s_%d.pdf", lastName, at.UnixMilli())
}

func (c *clientImpl) SubmitServiceIntake(ctx context.Context, payload models.SubmissionPayload, pdf []byte) (*models.SubmitResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("data", string(data)); err != nil {
		return nil, fmt.Errorf("error writing data part: %w", err)
	}

	fileName := FileName(payload.CustomerInfo.LastName, c.now())
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdf"; filename="%s"`, escapeQuotes(fileName)))
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("error creating pdf part: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, fmt.Errorf("error writing pdf part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("error closing multipart body: %w", err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"file":  fileName,
		"bytes": len(pdf),
	}).Debug("Submitting service intake")

	var result models.SubmitResponse
	if err := c.do(ctx, http.MethodPost, runTaskPath, w.FormDataContentType(), &body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *clientImpl) SubmitTest(ctx context.Context) (*models.SubmitResponse, error) {
	data, err := json.Marshal(models.TestRequest{Test: true, Message: testMessage})
	if err != nil {
		return nil, fmt.Errorf("error creating payload: %w", err)
	}

	var result models.SubmitResponse
	if err := c.do(ctx, http.MethodPost, runTaskPath, "application/json", bytes.NewReader(data), &result); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Test submission returned success=%v", result.Success)
	return &result, nil
}

func (c *clientImpl) HealthCheck(ctx context.Context) (models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.do(ctx, http.MethodGet, healthPath, "", nil, &status); err != nil {
		return nil, err
	}
	return status, nil
}

// do sends one request bounded by the client timeout and decodes a 2xx JSON
// body into out.
func (c *clientImpl) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.wrapTransport(ctx, "error sending request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.wrapTransport(ctx, "error reading response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.Logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"path":   path,
		}).Warnf("Backend error response: %s", truncate(string(raw), 200))
		return &StatusError{StatusCode: resp.StatusCode, Message: serverMessage(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}

// wrapTransport turns a deadline hit on the request context into a
// TimeoutError; anything else is wrapped as is.
func (c *clientImpl) wrapTransport(ctx context.Context, doing string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{After: c.timeout}
	}
	return fmt.Errorf("%s: %w", doing, err)
}

func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
