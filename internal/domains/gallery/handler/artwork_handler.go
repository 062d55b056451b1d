package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/internal/domains/gallery/service"
	"gallery-backend/internal/shared/response"
)

type ArtworkHandler struct {
	coordinator service.CoordinatorInterface
	query       service.QueryInterface
}

func NewArtworkHandler(coordinator service.CoordinatorInterface, query service.QueryInterface) *ArtworkHandler {
	return &ArtworkHandler{
		coordinator: coordinator,
		query:       query,
	}
}

func (h *ArtworkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	artworks := rg.Group("/artworks")
	{
		artworks.GET("", h.List)
		artworks.GET("/:id", h.GetByID)
		artworks.GET("/category/:categoryId", h.ListTitlesByCategory)
		artworks.POST("", h.Create)
		artworks.PUT("/:id", h.Update)
		artworks.DELETE("/:id", h.Delete)

		artworks.POST("/link", h.Link)
		artworks.DELETE("/unlink", h.Unlink)
	}
}

// List - GET /v1/artworks
func (h *ArtworkHandler) List(c *gin.Context) {
	artworks, err := h.query.ListArtworks(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artworks)
}

// GetByID - GET /v1/artworks/:id
func (h *ArtworkHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	artwork, err := h.query.FindArtwork(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artwork)
}

// ListTitlesByCategory - GET /v1/artworks/category/:categoryId
// Answers 404 when the category holds no artworks.
func (h *ArtworkHandler) ListTitlesByCategory(c *gin.Context) {
	categoryID, err := parseID(c, "categoryId", false)
	if err != nil {
		handleError(c, err)
		return
	}

	titles, err := h.query.ListArtworkTitlesByCategory(c.Request.Context(), categoryID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, titles)
}

// Create - POST /v1/artworks
func (h *ArtworkHandler) Create(c *gin.Context) {
	var req model.CreateArtworkRequest
	if !bindJSON(c, &req) {
		return
	}

	artwork, err := h.coordinator.AddArtwork(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, location(c, artwork.ID), artwork)
}

// Update - PUT /v1/artworks/:id
func (h *ArtworkHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	var req model.UpdateArtworkRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.coordinator.UpdateArtwork(c.Request.Context(), id, req); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete - DELETE /v1/artworks/:id
func (h *ArtworkHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.coordinator.DeleteArtwork(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

// Link - POST /v1/artworks/link?artworkId=5&categoryId=2
func (h *ArtworkHandler) Link(c *gin.Context) {
	artworkID, categoryID, ok := linkParams(c)
	if !ok {
		return
	}

	if err := h.coordinator.LinkArtwork(c.Request.Context(), artworkID, categoryID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.LinkResponse{
		Message: "Artwork successfully linked to category.",
	})
}

// Unlink - DELETE /v1/artworks/unlink?artworkId=5&categoryId=2
// The artwork is moved to the default category.
func (h *ArtworkHandler) Unlink(c *gin.Context) {
	artworkID, categoryID, ok := linkParams(c)
	if !ok {
		return
	}

	if err := h.coordinator.UnlinkArtwork(c.Request.Context(), artworkID, categoryID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.LinkResponse{
		Message: fmt.Sprintf("Artwork %d unlinked from Category %d.", artworkID, categoryID),
	})
}

func linkParams(c *gin.Context) (artworkID, categoryID int64, ok bool) {
	artworkID, err := parseID(c, "artworkId", true)
	if err != nil {
		handleError(c, fmt.Errorf("artworkId: %w", err))
		return 0, 0, false
	}
	categoryID, err = parseID(c, "categoryId", true)
	if err != nil {
		handleError(c, fmt.Errorf("categoryId: %w", err))
		return 0, 0, false
	}
	return artworkID, categoryID, true
}
