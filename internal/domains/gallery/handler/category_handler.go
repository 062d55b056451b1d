package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/internal/domains/gallery/service"
	"gallery-backend/internal/shared/response"
)

type CategoryHandler struct {
	coordinator service.CoordinatorInterface
	query       service.QueryInterface
}

func NewCategoryHandler(coordinator service.CoordinatorInterface, query service.QueryInterface) *CategoryHandler {
	return &CategoryHandler{
		coordinator: coordinator,
		query:       query,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.GetByID)
		categories.POST("", h.Create)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}

// List - GET /v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.query.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// GetByID - GET /v1/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	category, err := h.query.FindCategory(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

// Create - POST /v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.coordinator.AddCategory(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, location(c, category.ID), category)
}

// Update - PUT /v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	var req model.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.coordinator.UpdateCategory(c.Request.Context(), id, req); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete - DELETE /v1/categories/:id
// Artworks in the category are left in place.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id", false)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.coordinator.DeleteCategory(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
