package services

import (
	"context"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/validation"
)

// categoryServiceImpl implements the CategoryService interface
type categoryServiceImpl struct {
	repo              sqlite.Repository
	mapper            *domain.Mapper
	categoryValidator *validation.CategoryValidator
}

// NewCategoryService creates a new CategoryService instance with default validation limits
func NewCategoryService(repo sqlite.Repository) CategoryService {
	return NewCategoryServiceWithValidator(repo, validation.NewValidator())
}

// NewCategoryServiceWithValidator creates a CategoryService validating with v
func NewCategoryServiceWithValidator(repo sqlite.Repository, v *validation.Validator) CategoryService {
	return &categoryServiceImpl{
		repo:              repo,
		mapper:            domain.NewMapper(),
		categoryValidator: validation.NewCategoryValidatorWithValidator(v),
	}
}

// normalizeColor returns the palette color for raw, or the raw value for
// the validator to reject. An empty color becomes the default.
func normalizeColor(raw string) domain.Color {
	if c, err := domain.ParseColor(raw); err == nil {
		return c
	}
	return domain.Color(raw)
}

// AddCategory appends a new category to the end of the list
func (c *categoryServiceImpl) AddCategory(ctx context.Context, name, color string) (*domain.Category, error) {
	category := domain.NewCategory(strings.TrimSpace(name), normalizeColor(color))
	if err := c.categoryValidator.ValidateCategory(category); err != nil {
		return nil, asValidationFailure(err)
	}

	dbCategory := c.mapper.Category.ToDatabase(category)
	if err := c.repo.CreateCategory(ctx, &dbCategory); err != nil {
		return nil, err
	}

	created := c.mapper.Category.FromDatabase(dbCategory)
	return &created, nil
}

// GetCategory retrieves a category by its ID
func (c *categoryServiceImpl) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	dbCategory, err := c.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category := c.mapper.Category.FromDatabase(*dbCategory)
	return &category, nil
}

// ListCategories returns every category in insertion order
func (c *categoryServiceImpl) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	dbCategories, err := c.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return c.mapper.Category.FromDatabaseSlice(dbCategories), nil
}

// UpdateCategory renames or recolors the matching category. Tasks keep
// their labels, so a rename leaves them under the old name.
func (c *categoryServiceImpl) UpdateCategory(ctx context.Context, category domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	category.Color = normalizeColor(string(category.Color))

	if err := c.categoryValidator.ValidateCategory(category); err != nil {
		return asValidationFailure(err)
	}

	dbCategory := c.mapper.Category.ToDatabase(category)
	return c.ignoreMissing("update", category.ID, c.repo.UpdateCategory(ctx, &dbCategory))
}

// DeleteCategory removes the matching category. Its tasks are untouched.
func (c *categoryServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	return c.ignoreMissing("delete", id, c.repo.DeleteCategory(ctx, id))
}

func (c *categoryServiceImpl) ignoreMissing(op, id string, err error) error {
	if errors.IsNotFound(err) {
		logging.Debugf("%s category %q: no such category, nothing to do", op, id)
		return nil
	}
	return err
}
