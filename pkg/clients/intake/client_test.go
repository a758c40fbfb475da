package intake

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargedcycleworks/service-intake/pkg/models"
)

var fixedNow = time.UnixMilli(1791820800123)

func testPayload() models.SubmissionPayload {
	f := models.FormState{
		FirstName:   "Jane",
		LastName:    "Doe",
		InitialsA:   " JD ",
		PrintedName: "Jane Doe",
	}
	return models.NewSubmissionPayload(f, "data:image/png;base64,AAAA", fixedNow)
}

func newTestClient(url string, timeout time.Duration) Client {
	return NewClient(url+"/", timeout, WithClock(func() time.Time { return fixedNow }))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "service_intake_Doe_1791820800123.pdf", FileName("Doe", fixedNow))
}

func TestSubmitServiceIntakeSendsMultipart(t *testing.T) {
	var (
		gotData     models.SubmissionPayload
		gotFile     string
		gotType     string
		gotPDF      []byte
		gotPath     string
		gotMethod   string
		parseFailed error
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			parseFailed = err
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		parseFailed = json.Unmarshal([]byte(r.FormValue("data")), &gotData)

		file, header, err := r.FormFile("pdf")
		if err != nil {
			parseFailed = err
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFile = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotPDF, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Received"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, time.Second).SubmitServiceIntake(context.Background(), testPayload(), []byte("%PDF-1.3 test"))
	require.NoError(t, err)
	require.NoError(t, parseFailed)

	assert.True(t, resp.Success)
	assert.Equal(t, "Received", resp.Message)
	assert.Equal(t, "/run-task", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "service_intake_Doe_1791820800123.pdf", gotFile)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, []byte("%PDF-1.3 test"), gotPDF)
	assert.Equal(t, "Jane", gotData.CustomerInfo.FirstName)
	assert.Equal(t, "JD", gotData.Initials.SectionA)
	assert.Equal(t, "2026-10-12T16:00:00.123Z", gotData.SubmittedAt)
}

func TestSubmitServiceIntakeRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Shop is closed"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, time.Second).SubmitServiceIntake(context.Background(), testPayload(), []byte("pdf"))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Shop is closed", resp.Message)
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"message":"upstream down"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).SubmitServiceIntake(context.Background(), testPayload(), []byte("pdf"))
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream down", statusErr.Message)
	assert.Equal(t, "HTTP error! status: 502", statusErr.Error())
}

func TestNon2xxWithoutJSONHasNoMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).SubmitTest(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Empty(t, statusErr.Message)
}

func TestMalformedJSONIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).SubmitServiceIntake(context.Background(), testPayload(), []byte("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing response")
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := newTestClient(srv.URL, 50*time.Millisecond).SubmitServiceIntake(context.Background(), testPayload(), []byte("pdf"))
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	assert.True(t, errors.Is(err, ErrTimeout))
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "Request timed out after 0.05s. Please try again.", timeoutErr.Error())
}

func TestTimeoutMessageUsesWholeSeconds(t *testing.T) {
	err := &TimeoutError{After: 30 * time.Second}
	assert.Equal(t, "Request timed out after 30s. Please try again.", err.Error())
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, time.Second).HealthCheck(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "error sending request")
}

func TestSubmitTestSendsJSON(t *testing.T) {
	var got models.TestRequest
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":true,"message":"pong"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, time.Second).SubmitTest(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "application/json", contentType)
	assert.True(t, got.Test)
	assert.Equal(t, testMessage, got.Message)
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","version":"1.2"}`))
	}))
	defer srv.Close()

	status, err := newTestClient(srv.URL, time.Second).HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2", status["version"])
}
