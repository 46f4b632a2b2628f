package service

import (
	"context"
	"fmt"

	"ratehub/internal/cache"
	"ratehub/internal/http-api/apperrors"
	"ratehub/internal/http-api/dto"
	"ratehub/internal/http-api/models"
	"ratehub/internal/http-api/repository"
)

const genresCacheKey = "catalog:genres"

type GenreService interface {
	List(ctx context.Context, search string) ([]dto.RubricResponse, error)
	Create(ctx context.Context, in dto.CreateRubricRequest) (*dto.RubricResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo      repository.GenreRepository
	listCache *cache.ListCache
}

func NewGenreService(repo repository.GenreRepository, listCache *cache.ListCache) GenreService {
	return &genreService{repo: repo, listCache: listCache}
}

func (s *genreService) List(ctx context.Context, search string) ([]dto.RubricResponse, error) {
	if search == "" {
		var cached []dto.RubricResponse
		if hit, err := s.listCache.Get(ctx, genresCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.RubricResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, dto.FromModelToGenreResponse(g))
	}

	if search == "" {
		_ = s.listCache.Set(ctx, genresCacheKey, resp)
	}

	return resp, nil
}

func (s *genreService) Create(ctx context.Context, in dto.CreateRubricRequest) (*dto.RubricResponse, error) {
	if err := validateSlug(in.Slug); err != nil {
		return nil, err
	}

	genre := models.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.repo.Create(ctx, &genre); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: genre with slug %q already exists", apperrors.ErrConflict, in.Slug)
		}
		return nil, err
	}

	_ = s.listCache.Invalidate(ctx, genresCacheKey)

	resp := dto.FromModelToGenreResponse(genre)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	affected, err := s.repo.DeleteBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: genre %q", apperrors.ErrNotFound, slug)
	}

	_ = s.listCache.Invalidate(ctx, genresCacheKey)
	return nil
}
