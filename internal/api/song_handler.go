package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/service"
	"github.com/rs/zerolog"
)

// SongHandler handles public song pages and admin song CRUD
type SongHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSongHandler creates a new SongHandler
func NewSongHandler(services *service.Services, log zerolog.Logger) *SongHandler {
	return &SongHandler{
		services: services,
		log:      log.With().Str("handler", "song").Logger(),
	}
}

// List handles GET /v1/songs
func (h *SongHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	songs, err := h.services.Song.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Song listing failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs, "count": len(songs)})
}

// Get handles GET /v1/songs/:id, counting the view
func (h *SongHandler) Get(c *gin.Context) {
	song, err := h.services.Song.Get(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, song)
}

// Search handles GET /v1/songs/search?q=prefix
func (h *SongHandler) Search(c *gin.Context) {
	prefix := c.Query("q")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	limit, _ := pagination(c)
	songs, err := h.services.Song.Search(c.Request.Context(), prefix, limit)
	if err != nil {
		h.log.Error().Err(err).Str("prefix", prefix).Msg("Song search failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs, "count": len(songs)})
}

// Create handles POST /v1/admin/songs
func (h *SongHandler) Create(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var input models.SongInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	song, err := h.services.Song.Create(c.Request.Context(), &input, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, song)
}

// Update handles PUT /v1/admin/songs/:id
func (h *SongHandler) Update(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var input models.SongInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	song, err := h.services.Song.Update(c.Request.Context(), c.Param("id"), &input, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, song)
}

// Delete handles DELETE /v1/admin/songs/:id
func (h *SongHandler) Delete(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	if err := h.services.Song.Delete(c.Request.Context(), c.Param("id"), identity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// pagination reads limit/offset query parameters with safe defaults
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
