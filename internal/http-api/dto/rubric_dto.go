package dto

import "ratehub/internal/http-api/models"

// Categories and genres share the same name+slug shape.

// CreateRubricRequest: admin-side creation of a category or genre
type CreateRubricRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// RubricResponse for returning a category or genre
type RubricResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(category models.Category) RubricResponse {
	return RubricResponse{Name: category.Name, Slug: category.Slug}
}

func FromModelToGenreResponse(genre models.Genre) RubricResponse {
	return RubricResponse{Name: genre.Name, Slug: genre.Slug}
}

func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
