package dto

import (
	"time"

	"ratehub/internal/http-api/models"
)

// CreateCommentRequest: the author and review come from the token and the
// route, never from the payload
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

// UpdateCommentRequest for editing a comment
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID      int64     `json:"id"`
	Author  *string   `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	var author *string
	if comment.Author != nil {
		author = &comment.Author.Username
	}
	return &CommentResponse{
		ID:      comment.ID,
		Author:  author,
		Text:    comment.Text,
		PubDate: comment.CreatedAt,
	}
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
}

func NewPaginatedCommentResponse(data []CommentResponse, total int64, page, pageSize int) *PaginatedCommentResponse {
	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}
}
