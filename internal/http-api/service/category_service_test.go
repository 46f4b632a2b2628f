package service

import (
	"context"
	"testing"

	"ratehub/internal/http-api/apperrors"
	"ratehub/internal/http-api/dto"
	"ratehub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// The nil cache exercises the no-op path; caching behaviour itself is
// covered against a live redis.

func TestCreateCategory_Success(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockRepo, nil)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.Name == "Movies" && c.Slug == "movies"
	})).Return(nil)

	resp, err := svc.Create(context.Background(), dto.CreateRubricRequest{Name: "Movies", Slug: "movies"})

	assert.NoError(t, err)
	assert.Equal(t, "movies", resp.Slug)
	mockRepo.AssertExpectations(t)
}

func TestCreateCategory_SlugRules(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"movies", true},
		{"sci-fi_2", true},
		{"", false},
		{"has space", false},
		{"ещё", false},
	}

	for _, tt := range tests {
		mockRepo := new(MockCategoryRepository)
		svc := NewCategoryService(mockRepo, nil)
		if tt.valid {
			mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)
		}

		_, err := svc.Create(context.Background(), dto.CreateRubricRequest{Name: "X", Slug: tt.slug})

		if tt.valid {
			assert.NoError(t, err, tt.slug)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrValidation, tt.slug)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	}
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockRepo, nil)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(gorm.ErrDuplicatedKey)

	resp, err := svc.Create(context.Background(), dto.CreateRubricRequest{Name: "Movies", Slug: "movies"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestListCategories_Search(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockRepo, nil)

	mockRepo.On("List", mock.Anything, "mov").Return([]models.Category{
		{ID: 1, Name: "Movies", Slug: "movies"},
	}, nil)

	list, err := svc.List(context.Background(), "mov")

	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "movies", list[0].Slug)
	mockRepo.AssertExpectations(t)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockRepo, nil)

	mockRepo.On("DeleteBySlug", mock.Anything, "ghost").Return(int64(0), nil)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteCategory_Success(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := NewCategoryService(mockRepo, nil)

	mockRepo.On("DeleteBySlug", mock.Anything, "movies").Return(int64(1), nil)

	err := svc.Delete(context.Background(), "movies")

	assert.NoError(t, err)
}
