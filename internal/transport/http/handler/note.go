package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/notesapp/notes-api/internal/domain"
	"github.com/notesapp/notes-api/internal/metrics"
	"github.com/notesapp/notes-api/internal/transport/http/middleware"
	"github.com/notesapp/notes-api/internal/usecase"
)

type noteUsecaser interface {
	Create(ctx context.Context, owner *domain.User, input usecase.CreateNoteInput) (*domain.Note, error)
	Get(ctx context.Context, owner *domain.User, id int64) (*domain.Note, error)
	Update(ctx context.Context, owner *domain.User, id int64, patch usecase.UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, owner *domain.User, id int64) error
	List(ctx context.Context, owner *domain.User, input usecase.ListNotesInput) ([]*domain.Note, error)
}

type NoteHandler struct {
	noteUsecase noteUsecaser
	logger      *slog.Logger
}

func NewNoteHandler(noteUsecase noteUsecaser, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{noteUsecase: noteUsecase, logger: logger.With("component", "note_handler")}
}

type createNoteRequest struct {
	Title   string  `json:"title"   binding:"required,max=200"`
	Content *string `json:"content"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"   binding:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
}

type listNotesQuery struct {
	Q     string `form:"q"`
	Sort  string `form:"sort"`
	Limit *int   `form:"limit"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		OwnerID:   n.OwnerID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// POST /notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.noteUsecase.Create(c.Request.Context(), middleware.CurrentUser(c),
		usecase.CreateNoteInput{Title: req.Title, Content: req.Content})
	if err != nil {
		h.respondError(c, "create", err)
		return
	}

	metrics.NoteOperationsTotal.WithLabelValues("create", "success").Inc()
	c.JSON(http.StatusCreated, newNoteResponse(note))
}

// GET /notes
func (h *NoteHandler) List(c *gin.Context) {
	var query listNotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notes, err := h.noteUsecase.List(c.Request.Context(), middleware.CurrentUser(c),
		usecase.ListNotesInput{TitleFilter: query.Q, Sort: query.Sort, Limit: query.Limit})
	if err != nil {
		h.respondError(c, "list", err)
		return
	}

	response := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		response = append(response, newNoteResponse(n))
	}

	metrics.NoteOperationsTotal.WithLabelValues("list", "success").Inc()
	c.JSON(http.StatusOK, response)
}

// GET /notes/:id
func (h *NoteHandler) GetByID(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}

	note, err := h.noteUsecase.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.respondError(c, "get", err)
		return
	}

	metrics.NoteOperationsTotal.WithLabelValues("get", "success").Inc()
	c.JSON(http.StatusOK, newNoteResponse(note))
}

// PATCH /notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.noteUsecase.Update(c.Request.Context(), middleware.CurrentUser(c), id,
		usecase.UpdateNoteInput{Title: req.Title, Content: req.Content})
	if err != nil {
		h.respondError(c, "update", err)
		return
	}

	metrics.NoteOperationsTotal.WithLabelValues("update", "success").Inc()
	c.JSON(http.StatusOK, newNoteResponse(note))
}

// DELETE /notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}

	if err := h.noteUsecase.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		h.respondError(c, "delete", err)
		return
	}

	metrics.NoteOperationsTotal.WithLabelValues("delete", "success").Inc()
	c.JSON(http.StatusOK, gin.H{"detail": "Note deleted"})
}

func noteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return 0, false
	}
	return id, true
}

func (h *NoteHandler) respondError(c *gin.Context, operation string, err error) {
	var invalid *domain.InvalidArgumentError
	switch {
	case errors.Is(err, domain.ErrNoteNotFound):
		metrics.NoteOperationsTotal.WithLabelValues(operation, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": errNoteNotFound})
	case errors.As(err, &invalid):
		metrics.NoteOperationsTotal.WithLabelValues(operation, "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	default:
		h.logger.ErrorContext(c.Request.Context(), operation+" note", "error", err)
		metrics.NoteOperationsTotal.WithLabelValues(operation, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
