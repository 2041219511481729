package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

// UseCase manages the open, user-extensible category registry. Categories
// and their item suggestions can be added at runtime by any signed-in user.
type UseCase struct {
	categories repository.CategoryRepository
}

// NewUseCase builds the category use case.
func NewUseCase(categories repository.CategoryRepository) *UseCase {
	return &UseCase{categories: categories}
}

// Create registers a new category with an optional seed item list.
func (uc *UseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categories.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Items:     in.Items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categories.Create(c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List returns every category with its item suggestions.
func (uc *UseCase) List() (*dto.CategoryListResponse, error) {
	list, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryListResponse{Items: make([]dto.CategoryResponse, 0, len(list))}
	for _, c := range list {
		out.Items = append(out.Items, *toCategoryResponse(c))
	}
	return out, nil
}

// AddItem appends an item suggestion to a category; duplicates are ignored.
func (uc *UseCase) AddItem(name string, in dto.AddCategoryItemRequest) (*dto.CategoryResponse, error) {
	if in.Item == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.categories.GetByName(name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	for _, item := range c.Items {
		if item == in.Item {
			return toCategoryResponse(c), nil
		}
	}
	c.Items = append(c.Items, in.Item)
	c.UpdatedAt = time.Now()
	if err := uc.categories.Update(c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Items: c.Items}
}
