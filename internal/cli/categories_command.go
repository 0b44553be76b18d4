package cli

import (
	"context"
	"strings"

	"task-manager/internal/domain"
)

// CategoryOptions holds the category add/edit flags. Nil fields keep the
// stored value on edit.
type CategoryOptions struct {
	Name  *string
	Color *string
}

// CategoriesCommand handles the categories subcommands
type CategoriesCommand struct {
	app  *App
	opts CategoryOptions
}

// NewCategoriesCommand creates a new categories command handler
func NewCategoriesCommand(app *App, opts CategoryOptions) *CategoriesCommand {
	return &CategoriesCommand{app: app, opts: opts}
}

// List prints every category with its task progress
func (c *CategoriesCommand) List(ctx context.Context, args []string) error {
	progress, err := c.app.businessAPI.ListCategoryProgress(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list categories", err)
	}

	if len(progress) == 0 {
		c.app.println("No categories")
		return nil
	}
	for _, p := range progress {
		c.app.printf("%-12s %-7s %d/%d completed  (%s)\n",
			p.Category.Name, p.Category.Color, p.Completed, p.Total, p.Category.ID)
	}
	return nil
}

// Add appends a category named by the joined arguments. A blank name is
// ignored without output.
func (c *CategoriesCommand) Add(ctx context.Context, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return nil
	}

	color := ""
	if c.opts.Color != nil {
		color = *c.opts.Color
	}

	category, err := c.app.businessAPI.AddCategory(ctx, name, color)
	if err != nil {
		return c.app.errorHandler.Handle("add category", err)
	}

	c.app.printf("Added category: %s (%s)\n", category.Name, category.ID)
	return nil
}

// Edit renames or recolors the category with the given id
func (c *CategoriesCommand) Edit(ctx context.Context, args []string) error {
	category, err := c.find(ctx, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("edit category", err)
	}
	if category == nil {
		c.app.println("Category not found")
		return nil
	}

	if c.opts.Name != nil {
		if strings.TrimSpace(*c.opts.Name) == "" {
			return nil
		}
		category.Name = *c.opts.Name
	}
	if c.opts.Color != nil {
		category.Color = domain.Color(*c.opts.Color)
	}

	if err := c.app.businessAPI.UpdateCategory(ctx, *category); err != nil {
		return c.app.errorHandler.Handle("edit category", err)
	}

	c.app.printf("Updated category: %s\n", strings.TrimSpace(category.Name))
	return nil
}

// Delete removes the category with the given id. Its tasks keep their labels.
func (c *CategoriesCommand) Delete(ctx context.Context, args []string) error {
	category, err := c.find(ctx, args[0])
	if err != nil {
		return c.app.errorHandler.Handle("delete category", err)
	}
	if category == nil {
		c.app.println("Category not found")
		return nil
	}

	if err := c.app.businessAPI.DeleteCategory(ctx, category.ID); err != nil {
		return c.app.errorHandler.Handle("delete category", err)
	}

	c.app.printf("Deleted category: %s\n", category.Name)
	return nil
}

// find returns the category with id, or nil when there is none
func (c *CategoriesCommand) find(ctx context.Context, id string) (*domain.Category, error) {
	categories, err := c.app.businessAPI.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, nil
}
