package service

import (
	"context"
	"fmt"
	"regexp"

	"ratehub/internal/cache"
	"ratehub/internal/http-api/apperrors"
	"ratehub/internal/http-api/dto"
	"ratehub/internal/http-api/models"
	"ratehub/internal/http-api/repository"
)

var slugRegexp = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const categoriesCacheKey = "catalog:categories"

func validateSlug(slug string) error {
	if slug == "" || len(slug) > 50 {
		return fmt.Errorf("%w: slug must be 1-50 characters", apperrors.ErrValidation)
	}
	if !slugRegexp.MatchString(slug) {
		return fmt.Errorf("%w: slug may only contain letters, digits, hyphens and underscores", apperrors.ErrValidation)
	}
	return nil
}

type CategoryService interface {
	List(ctx context.Context, search string) ([]dto.RubricResponse, error)
	Create(ctx context.Context, in dto.CreateRubricRequest) (*dto.RubricResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	listCache *cache.ListCache
}

func NewCategoryService(repo repository.CategoryRepository, listCache *cache.ListCache) CategoryService {
	return &categoryService{repo: repo, listCache: listCache}
}

func (s *categoryService) List(ctx context.Context, search string) ([]dto.RubricResponse, error) {
	// Only the unfiltered listing is cached; searches go to the DB
	if search == "" {
		var cached []dto.RubricResponse
		if hit, err := s.listCache.Get(ctx, categoriesCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.RubricResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, dto.FromModelToCategoryResponse(c))
	}

	if search == "" {
		// Cache write failures are not worth failing a read
		_ = s.listCache.Set(ctx, categoriesCacheKey, resp)
	}

	return resp, nil
}

func (s *categoryService) Create(ctx context.Context, in dto.CreateRubricRequest) (*dto.RubricResponse, error) {
	if err := validateSlug(in.Slug); err != nil {
		return nil, err
	}

	category := models.Category{Name: in.Name, Slug: in.Slug}
	if err := s.repo.Create(ctx, &category); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: category with slug %q already exists", apperrors.ErrConflict, in.Slug)
		}
		return nil, err
	}

	_ = s.listCache.Invalidate(ctx, categoriesCacheKey)

	resp := dto.FromModelToCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	affected, err := s.repo.DeleteBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %q", apperrors.ErrNotFound, slug)
	}

	_ = s.listCache.Invalidate(ctx, categoriesCacheKey)
	return nil
}
