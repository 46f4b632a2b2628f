package dto

import (
	"time"

	"ratehub/internal/http-api/models"
)

// CreateReviewRequest: the author and title come from the token and the
// route, never from the payload. A missing score defaults to 1.
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score,omitempty"`
}

// UpdateReviewRequest: partial update; nil fields are left untouched
type UpdateReviewRequest struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty"`
}

// ReviewResponse for returning review information; Author is the username,
// nil when the account was deleted
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Author  *string   `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	var author *string
	if review.Author != nil {
		author = &review.Author.Username
	}
	return &ReviewResponse{
		ID:      review.ID,
		Author:  author,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.CreatedAt,
	}
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
}

func NewPaginatedReviewResponse(data []ReviewResponse, total int64, page, pageSize int) *PaginatedReviewResponse {
	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
}
