package handler

import (
	"net/http"

	"ratehub/internal/http-api/dto"
	"ratehub/internal/http-api/middleware"
	"ratehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc         service.CategoryService
	authService service.AuthService
}

func NewCategoryHandler(svc service.CategoryService, authService service.AuthService) *CategoryHandler {
	return &CategoryHandler{svc: svc, authService: authService}
}

// RegisterRoutes: public list, admin-only writes
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)

	admin := router.Group("", middleware.Authenticate(h.authService), middleware.RequireAdmin())
	admin.POST("", h.Create)
	admin.DELETE("/:slug", h.Delete)
}

// List returns all categories, optionally filtered by a name substring
// GET /api/v1/categories?search=...
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Delete removes a category by slug
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
