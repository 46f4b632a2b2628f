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

const defaultScore = 1

type ReviewService interface {
	Create(ctx context.Context, actor *models.User, titleID int64, in dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	List(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, in dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
	// ComputeRating returns the rounded mean of the title's review scores,
	// nil when no reviews exist. Recomputed on every call, never cached.
	ComputeRating(ctx context.Context, titleID int64) (*int, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func validateScore(score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("%w: score must be between 1 and 10", apperrors.ErrValidation)
	}
	return nil
}

func (s *reviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: title %d", apperrors.ErrNotFound, titleID)
		}
		return err
	}
	return nil
}

// getForTitle resolves a review id and verifies it belongs to the routed
// title, so review ids cannot be addressed through a foreign title.
func (s *reviewService) getForTitle(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: review %d", apperrors.ErrNotFound, reviewID)
	}
	if err != nil {
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, fmt.Errorf("%w: review %d", apperrors.ErrNotFound, reviewID)
	}
	return review, nil
}

// Create persists a review with a server-assigned author and title. The
// one-review-per-(user,title) rule is enforced by the storage constraint,
// so concurrent duplicates resolve to exactly one success and one conflict.
func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	score := defaultScore
	if in.Score != nil {
		score = *in.Score
	}
	if err := validateScore(score); err != nil {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: &actor.ID,
		Text:     in.Text,
		Score:    score,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: you have already reviewed this title", apperrors.ErrConflict)
		}
		return nil, err
	}

	// Reload with author data
	review, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	return dto.NewPaginatedReviewResponse(responses, total, page, pageSize), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, in dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !canModify(actor, review.AuthorID) {
		return nil, fmt.Errorf("%w: only the author, a moderator or an admin may edit a review", apperrors.ErrPermission)
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if err := validateScore(*in.Score); err != nil {
			return nil, err
		}
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	review, err = s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !canModify(actor, review.AuthorID) {
		return fmt.Errorf("%w: only the author, a moderator or an admin may delete a review", apperrors.ErrPermission)
	}

	_, err = s.reviewRepo.Delete(ctx, review.ID)
	return err
}

func (s *reviewService) ComputeRating(ctx context.Context, titleID int64) (*int, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	avg, err := s.reviewRepo.AverageScore(ctx, titleID)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}

	rating := int(avg.Float64)
	return &rating, nil
}
