package delivery

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"email-audit-backend/internal/ingestion/repository"
	"email-audit-backend/internal/ingestion/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IngestionHandler handles .eml upload and thread HTTP requests
type IngestionHandler struct {
	ingestWorker *usecase.IngestWorkerService
	threadRepo   repository.ThreadRepository
	uploadDir    string
}

// NewIngestionHandler creates a new IngestionHandler
func NewIngestionHandler(ingestWorker *usecase.IngestWorkerService, threadRepo repository.ThreadRepository, uploadDir string) *IngestionHandler {
	return &IngestionHandler{
		ingestWorker: ingestWorker,
		threadRepo:   threadRepo,
		uploadDir:    uploadDir,
	}
}

// UploadEML accepts an .eml file and queues it for background ingestion
// POST /api/ingestion/upload-eml
func (h *IngestionHandler) UploadEML(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field"})
		return
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".eml") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .eml files are accepted"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Stored under a random name so concurrent uploads of the same
	// filename never collide
	dst := filepath.Join(h.uploadDir, uuid.New().String()+".eml")
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	jobID, queued := h.ingestWorker.QueueIngest(dst)
	if !queued {
		os.Remove(dst)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ingestion queue is full, try again later"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":  jobID,
		"message": "File accepted for processing",
	})
}

// GetThreads returns threads ordered by most recent activity
// GET /api/threads?limit=50&offset=0
func (h *IngestionHandler) GetThreads(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	threads, total, err := h.threadRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threads": threads,
		"total":   total,
	})
}

// GetThreadByID returns a thread with its messages
// GET /api/threads/:id
func (h *IngestionHandler) GetThreadByID(c *gin.Context) {
	thread, err := h.threadRepo.FindByIDWithMessages(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, thread)
}
