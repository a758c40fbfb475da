package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargedcycleworks/service-intake/pkg/clients/intake"
	"github.com/chargedcycleworks/service-intake/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	dir := filepath.Join(t.TempDir(), "uploads")
	return NewRouter(NewHandlers(dir), []string{"*"}), dir
}

func multipartBody(t *testing.T, data, fileName string, pdf []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if data != "" {
		require.NoError(t, w.WriteField("data", data))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("pdf", fileName)
		require.NoError(t, err)
		_, err = part.Write(pdf)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) models.SubmitResponse {
	t.Helper()
	var resp models.SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func payloadJSON(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(models.SubmissionPayload{
		CustomerInfo: models.CustomerInfo{FirstName: "Jane", LastName: "Doe", Phone: "(801) 555-0100"},
	})
	require.NoError(t, err)
	return string(raw)
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/health", "/health"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	}
}

func TestRunTaskSavesPDF(t *testing.T) {
	router, dir := newTestRouter(t)
	body, contentType := multipartBody(t, payloadJSON(t), "service_intake_Doe_1.pdf", []byte("%PDF-1.3"))

	req := httptest.NewRequest(http.MethodPost, "/run-task", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, receivedMessage, resp.Message)

	saved, err := os.ReadFile(filepath.Join(dir, "service_intake_Doe_1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), saved)
}

func TestLegacyPathAndTraversal(t *testing.T) {
	router, dir := newTestRouter(t)
	body, contentType := multipartBody(t, payloadJSON(t), "../../escape.pdf", []byte("%PDF"))

	req := httptest.NewRequest(http.MethodPost, "/api/service-intake", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, err := os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.NoError(t, err)
}

func TestRunTaskRejectsIncompleteUploads(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		fileName string
		want     string
	}{
		{"missing data", "", "a.pdf", "Missing data field"},
		{"bad json", "{not json", "a.pdf", "Invalid JSON format"},
		{"missing pdf", `{"customerInfo":{}}`, "", "Missing pdf file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)
			body, contentType := multipartBody(t, tt.data, tt.fileName, []byte("%PDF"))

			req := httptest.NewRequest(http.MethodPost, "/run-task", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestRunTaskJSONPing(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/run-task", strings.NewReader(`{"test":true,"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, pingMessage, resp.Message)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/run-task", nil)
	req.Header.Set("Origin", "https://intake.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIntakeClientAgainstMockBackend(t *testing.T) {
	router, dir := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	at := time.UnixMilli(1700000000000)
	client := intake.NewClient(srv.URL, 5*time.Second, intake.WithClock(func() time.Time { return at }))

	resp, err := client.SubmitServiceIntake(context.Background(),
		models.SubmissionPayload{CustomerInfo: models.CustomerInfo{FirstName: "Jane", LastName: "Doe"}},
		[]byte("%PDF-1.3 mock"))
	require.NoError(t, err)
	assert.True(t, resp.Success)

	_, err = os.Stat(filepath.Join(dir, intake.FileName("Doe", at)))
	assert.NoError(t, err)

	ping, err := client.SubmitTest(context.Background())
	require.NoError(t, err)
	assert.True(t, ping.Success)

	status, err := client.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status["status"])
}
