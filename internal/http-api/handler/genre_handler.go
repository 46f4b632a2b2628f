package handler

import (
	"net/http"

	"ratehub/internal/http-api/dto"
	"ratehub/internal/http-api/middleware"
	"ratehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc         service.GenreService
	authService service.AuthService
}

func NewGenreHandler(svc service.GenreService, authService service.AuthService) *GenreHandler {
	return &GenreHandler{svc: svc, authService: authService}
}

// RegisterRoutes: public list, admin-only writes
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)

	admin := router.Group("", middleware.Authenticate(h.authService), middleware.RequireAdmin())
	admin.POST("", h.Create)
	admin.DELETE("/:slug", h.Delete)
}

// List returns all genres, optionally filtered by a name substring
// GET /api/v1/genres?search=...
func (h *GenreHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

// Delete removes a genre by slug
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
