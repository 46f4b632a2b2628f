package service

import (
	"context"
	"errors"
	"fmt"

	"ratehub/internal/http-api/apperrors"
	"ratehub/internal/http-api/dto"
	"ratehub/internal/http-api/models"
	"ratehub/internal/http-api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, actor *models.User, reviewID int64, in dto.CreateCommentRequest) (*dto.CommentResponse, error)
	List(ctx context.Context, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
	Get(ctx context.Context, reviewID, commentID int64) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor *models.User, reviewID, commentID int64, in dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor *models.User, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) checkReview(ctx context.Context, reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review %d", apperrors.ErrNotFound, reviewID)
		}
		return err
	}
	return nil
}

func (s *commentService) getForReview(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: comment %d", apperrors.ErrNotFound, commentID)
	}
	if err != nil {
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, fmt.Errorf("%w: comment %d", apperrors.ErrNotFound, commentID)
	}
	return comment, nil
}

// Create attaches a comment to the routed review with a server-assigned
// author. No uniqueness rule: a user may comment any number of times.
func (s *commentService) Create(ctx context.Context, actor *models.User, reviewID int64, in dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := s.checkReview(ctx, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: &actor.ID,
		Text:     in.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) List(ctx context.Context, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if err := s.checkReview(ctx, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return dto.NewPaginatedCommentResponse(responses, total, page, pageSize), nil
}

func (s *commentService) Get(ctx context.Context, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(ctx context.Context, actor *models.User, reviewID, commentID int64, in dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !canModify(actor, comment.AuthorID) {
		return nil, fmt.Errorf("%w: only the author, a moderator or an admin may edit a comment", apperrors.ErrPermission)
	}

	comment.Text = in.Text
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	comment, err = s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, reviewID, commentID int64) error {
	comment, err := s.getForReview(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	if !canModify(actor, comment.AuthorID) {
		return fmt.Errorf("%w: only the author, a moderator or an admin may delete a comment", apperrors.ErrPermission)
	}

	_, err = s.commentRepo.Delete(ctx, comment.ID)
	return err
}
