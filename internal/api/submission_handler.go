package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/service"
	"github.com/rs/zerolog"
)

// SubmissionHandler handles the public lyrics form and the admin
// moderation queue
type SubmissionHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(services *service.Services, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		services: services,
		log:      log.With().Str("handler", "submission").Logger(),
	}
}

// Submit handles POST /v1/submissions, the public lyrics form
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var input models.SubmissionInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sub, err := h.services.Submission.Submit(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListPending handles GET /v1/admin/submissions
func (h *SubmissionHandler) ListPending(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	limit, offset := pagination(c)
	subs, err := h.services.Submission.ListPending(c.Request.Context(), identity, limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Pending submission listing failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs, "count": len(subs)})
}

// Get handles GET /v1/admin/submissions/:id, the moderation preview
func (h *SubmissionHandler) Get(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	sub, err := h.services.Submission.Get(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Approve handles POST /v1/admin/submissions/:id/approve
func (h *SubmissionHandler) Approve(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	song, err := h.services.Submission.Approve(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": c.Param("id"), "song": song})
}

// Reject handles POST /v1/admin/submissions/:id/reject
func (h *SubmissionHandler) Reject(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	if err := h.services.Submission.Reject(c.Request.Context(), c.Param("id"), identity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rejected": c.Param("id")})
}

// Delete handles DELETE /v1/admin/submissions/:id
func (h *SubmissionHandler) Delete(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	if err := h.services.Submission.Delete(c.Request.Context(), c.Param("id"), identity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
