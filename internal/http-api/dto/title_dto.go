package dto

import "ratehub/internal/http-api/models"

// CreateTitleRequest: admin-side title creation; category and genres are
// referenced by slug and resolved by the service
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// UpdateTitleRequest: partial update; nil fields are left untouched
type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// TitleResponse for returning title information; Rating is nil when the
// title has no reviews
type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *int             `json:"rating"`
	Description *string          `json:"description"`
	Genre       []RubricResponse `json:"genre"`
	Category    *RubricResponse  `json:"category"`
}

// FromModelToTitleResponse converts a Title model to TitleResponse DTO
func FromModelToTitleResponse(title *models.Title) *TitleResponse {
	genres := make([]RubricResponse, 0, len(title.Genres))
	for _, g := range title.Genres {
		genres = append(genres, FromModelToGenreResponse(g))
	}

	var category *RubricResponse
	if title.Category != nil {
		c := FromModelToCategoryResponse(*title.Category)
		category = &c
	}

	return &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      title.Rating,
		Description: title.Description,
		Genre:       genres,
		Category:    category,
	}
}

// PaginatedTitleResponse for returning paginated titles
type PaginatedTitleResponse struct {
	Data       []TitleResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func NewPaginatedTitleResponse(data []TitleResponse, total int64, page, pageSize int) *PaginatedTitleResponse {
	return &PaginatedTitleResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
}
