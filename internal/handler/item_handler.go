package handler

import (
	"net/http"

	"catalog-service/internal/service"

	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

type createItemRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
	Note  string `json:"note" validate:"max=2000"`
}

type updateItemRequest struct {
	Archived *bool `json:"archived" validate:"required"`
}

// CreateItem files a new item under one of the caller's categories.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.itemService.CreateItem(c.Request().Context(), user.ID, c.Param("id"), req.Title, req.Note)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/items/"+item.ID)
	return c.JSON(http.StatusCreated, item)
}

// GetItems lists the items filed under one of the caller's categories.
func (h *ItemHandler) GetItems(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	items, err := h.itemService.ListItems(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateItem archives or unarchives an item.
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.itemService.SetItemArchived(c.Request().Context(), c.Param("id"), user.ID, *req.Archived)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem permanently removes an item.
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	if err := h.itemService.DeleteItem(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
