package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/chargedcycleworks/service-intake/pkg/models"
	"github.com/chargedcycleworks/service-intake/pkg/utils"
)

const (
	receivedMessage = "Test submission received!"
	pingMessage     = "Test received"
)

// Handlers contains all HTTP handlers for the mock backend
type Handlers struct {
	uploadDir string
}

// NewHandlers creates a new Handlers instance that saves PDFs under uploadDir
func NewHandlers(uploadDir string) *Handlers {
	return &Handlers{
		uploadDir: uploadDir,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleRunTask accepts either the JSON connectivity test or a multipart
// intake submission.
func (h *Handlers) HandleRunTask(c *gin.Context) {
	if c.ContentType() == "application/json" {
		h.handleTest(c)
		return
	}
	h.HandleServiceIntake(c)
}

func (h *Handlers) handleTest(c *gin.Context) {
	var req models.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Logger.Warnf("Error parsing test request: %v", err)
		c.JSON(http.StatusBadRequest, models.SubmitResponse{Success: false, Message: "Invalid JSON format"})
		return
	}
	utils.Logger.Infof("Test request received: test=%v message=%q", req.Test, req.Message)
	c.JSON(http.StatusOK, models.SubmitResponse{Success: true, Message: pingMessage})
}

// HandleServiceIntake stores the uploaded PDF and logs who submitted it
func (h *Handlers) HandleServiceIntake(c *gin.Context) {
	data := c.PostForm("data")
	if data == "" {
		c.JSON(http.StatusBadRequest, models.SubmitResponse{Success: false, Message: "Missing data field"})
		return
	}

	var payload models.SubmissionPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		utils.Logger.Warnf("Error parsing data field: %v", err)
		c.JSON(http.StatusBadRequest, models.SubmitResponse{Success: false, Message: "Invalid JSON format"})
		return
	}

	file, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.SubmitResponse{Success: false, Message: "Missing pdf file"})
		return
	}

	// Never trust the client's path.
	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) {
		c.JSON(http.StatusBadRequest, models.SubmitResponse{Success: false, Message: "Invalid file name"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		utils.Logger.Errorf("Error creating upload dir: %v", err)
		c.JSON(http.StatusInternalServerError, models.SubmitResponse{Success: false, Message: "Could not store PDF"})
		return
	}
	dst := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		utils.Logger.Errorf("Error saving PDF: %v", err)
		c.JSON(http.StatusInternalServerError, models.SubmitResponse{Success: false, Message: "Could not store PDF"})
		return
	}

	utils.Logger.WithFields(logrus.Fields{
		"customer":   payload.CustomerInfo.FirstName + " " + payload.CustomerInfo.LastName,
		"phone_hash": utils.HashPhone(payload.CustomerInfo.Phone),
		"pdf":        dst,
		"bytes":      file.Size,
	}).Info("Service intake received")

	c.JSON(http.StatusOK, models.SubmitResponse{Success: true, Message: receivedMessage})
}
