package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tareas/internal/service"
)

// Client-facing error messages. Server-side causes are only logged.
const (
	msgDescripcionRequired = "descripcion is required"
	msgCompletadaInvalid   = "completada must be a boolean"
	msgInvalidID           = "invalid task id"
	msgNotFound            = "task not found"
	msgListFailed          = "failed to list tasks"
	msgCreateFailed        = "failed to create task"
	msgUpdateFailed        = "failed to update task"
	msgInvalidRequest      = "invalid request"
	msgBodyTooLarge        = "request body too large"
)

// maxBodyBytes caps request bodies on write endpoints.
const maxBodyBytes = 64 << 10

type createRequest struct {
	Descripcion *string `json:"descripcion"`
}

type updateStatusRequest struct {
	Completada *bool `json:"completada"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) handleList(c *gin.Context) {
	tasks, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if err := bindJSON(c, &req); err != nil || req.Descripcion == nil {
		if !tooLarge(c, err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgDescripcionRequired})
		}
		return
	}

	task, err := s.svc.Create(c.Request.Context(), *req.Descripcion)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgDescripcionRequired})
			return
		}
		s.respondError(c, err, msgCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return
	}

	var req updateStatusRequest
	if err := bindJSON(c, &req); err != nil || req.Completada == nil {
		if !tooLarge(c, err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgCompletadaInvalid})
		}
		return
	}

	task, err := s.svc.UpdateStatus(c.Request.Context(), id, *req.Completada)
	if err != nil {
		s.respondError(c, err, msgUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, task)
}

// respondError maps service errors to status codes.
// Anything unclassified becomes a 500 carrying only the generic message.
func (s *Server) respondError(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	default:
		s.log.ErrorContext(c.Request.Context(), generic,
			slog.String("request_id", c.GetString(RequestIDHeader)),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}

// bindJSON decodes a body of at most maxBodyBytes into dst.
func bindJSON(c *gin.Context, dst any) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	return c.ShouldBindJSON(dst)
}

// tooLarge answers 413 and reports true when err came from the body limit.
func tooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	if !errors.As(err, &maxErr) {
		return false
	}
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgBodyTooLarge})
	return true
}
