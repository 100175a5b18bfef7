package handler

import (
	"net/http"

	"catalog-service/internal/model"
	"catalog-service/internal/service"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Archived    *bool   `json:"archived"`
}

// CreateCategory creates a new category for the caller.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), user.ID, req.Name, req.Description)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/categories/"+category.ID)
	return c.JSON(http.StatusCreated, category)
}

// GetCategory retrieves one of the caller's categories by id.
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// GetCategories lists the caller's categories, ordered by name. Archived
// ones are included only when ?includeArchived=true.
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	includeArchived := c.QueryParam("includeArchived") == "true"
	categories, err := h.categoryService.ListCategories(c.Request().Context(), user.ID, includeArchived)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory applies a partial update. Absent fields stay untouched; an
// explicit empty description clears it.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patch := model.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		Archived:    req.Archived,
	}
	category, err := h.categoryService.UpdateCategory(c.Request().Context(), c.Param("id"), user.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory permanently removes a category without active items.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
