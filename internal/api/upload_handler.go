package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lyricverse-api/internal/config"
	"github.com/lyricverse-api/internal/storage"
	"github.com/rs/zerolog"
)

// UploadHandler accepts admin image uploads for songs and artists
type UploadHandler struct {
	blobs storage.BlobStore
	cfg   *config.Config
	log   zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(blobs storage.BlobStore, cfg *config.Config, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		blobs: blobs,
		cfg:   cfg,
		log:   log.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /v1/admin/uploads. The multipart form carries
// the file plus "kind" (songs or artists) and the owning record "id".
func (h *UploadHandler) Upload(c *gin.Context) {
	kind := c.PostForm("kind")
	if kind != "songs" && kind != "artists" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be songs or artists"})
		return
	}

	id := c.PostForm("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > h.cfg.Storage.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds maximum size of %d bytes", h.cfg.Storage.MaxUploadSize),
		})
		return
	}

	f, err := header.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to open uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.New().String() + ext
	path := fmt.Sprintf("%s/%s/%s", kind, id, name)

	url, err := h.blobs.Upload(c.Request.Context(), path, f)
	if err != nil {
		h.log.Error().Err(err).Str("path", path).Msg("Blob upload failed")
		respondError(c, err)
		return
	}

	h.log.Info().Str("path", path).Int64("bytes", header.Size).Msg("Image uploaded")
	c.JSON(http.StatusCreated, gin.H{"url": url, "path": path})
}
