package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/models"
	"github.com/lyricverse-api/internal/service"
	"github.com/rs/zerolog"
)

// ArtistHandler handles public artist pages and admin artist CRUD
type ArtistHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArtistHandler creates a new ArtistHandler
func NewArtistHandler(services *service.Services, log zerolog.Logger) *ArtistHandler {
	return &ArtistHandler{
		services: services,
		log:      log.With().Str("handler", "artist").Logger(),
	}
}

// List handles GET /v1/artists
func (h *ArtistHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	artists, err := h.services.Artist.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("Artist listing failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artists": artists, "count": len(artists)})
}

// Get handles GET /v1/artists/:id
func (h *ArtistHandler) Get(c *gin.Context) {
	artist, err := h.services.Artist.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

// Create handles POST /v1/admin/artists
func (h *ArtistHandler) Create(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var input models.ArtistInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	artist, err := h.services.Artist.Create(c.Request.Context(), &input, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artist)
}

// Update handles PUT /v1/admin/artists/:id
func (h *ArtistHandler) Update(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	var input models.ArtistInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	artist, err := h.services.Artist.Update(c.Request.Context(), c.Param("id"), &input, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

// Delete handles DELETE /v1/admin/artists/:id
func (h *ArtistHandler) Delete(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)

	if err := h.services.Artist.Delete(c.Request.Context(), c.Param("id"), identity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
