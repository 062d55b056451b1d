package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/internal/domains/gallery/service"
	"gallery-backend/internal/shared/response"
)

type ArtistHandler struct {
	coordinator service.CoordinatorInterface
	query       service.QueryInterface
}

func NewArtistHandler(coordinator service.CoordinatorInterface, query service.QueryInterface) *ArtistHandler {
	return &ArtistHandler{
		coordinator: coordinator,
		query:       query,
	}
}

// RegisterRoutes mounts the artist routes under rg.
func (h *ArtistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	artists := rg.Group("/artists")
	{
		artists.GET("", h.List)
		artists.GET("/:id", h.GetByID)
		artists.GET("/:id/artworks", h.ListArtworks)
		artists.POST("", h.Create)
		artists.PUT("/:id", h.Update)
		artists.DELETE("/:id", h.Delete)
	}
}

// List - GET /v1/artists
func (h *ArtistHandler) List(c *gin.Context) {
	artists, err := h.query.ListArtists(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artists)
}

// GetByID - GET /v1/artists/:id
func (h *ArtistHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	artist, err := h.query.FindArtist(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artist)
}

// ListArtworks - GET /v1/artists/:id/artworks
func (h *ArtistHandler) ListArtworks(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	artworks, err := h.query.ListArtworksByArtist(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artworks)
}

// Create - POST /v1/artists
func (h *ArtistHandler) Create(c *gin.Context) {
	var req model.CreateArtistRequest
	if !bindJSON(c, &req) {
		return
	}

	artist, err := h.coordinator.AddArtist(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, location(c, artist.ID), artist)
}

// Update - PUT /v1/artists/:id
func (h *ArtistHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	var req model.UpdateArtistRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.coordinator.UpdateArtist(c.Request.Context(), id, req); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete - DELETE /v1/artists/:id
func (h *ArtistHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.coordinator.DeleteArtist(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
