package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-service/internal/handler"
	"catalog-service/internal/model"
	"catalog-service/internal/repository/memory"
	"catalog-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEnvelope struct {
	Status      int    `json:"status"`
	ErrorCode   string `json:"errorCode"`
	Message     string `json:"message"`
	Path        string `json:"path"`
	Timestamp   string `json:"timestamp"`
	FieldErrors []struct {
		Field         string      `json:"field"`
		Message       string      `json:"message"`
		RejectedValue interface{} `json:"rejectedValue"`
	} `json:"fieldErrors"`
}

type categoryBody struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Archived    bool   `json:"archived"`
	ChildCount  int    `json:"childCount"`
}

// newTestServer wires the real handlers, validator and error handler behind a
// middleware that injects the given user, standing in for the session layer.
func newTestServer(t *testing.T) (*echo.Echo, *model.User) {
	t.Helper()

	itemRepo := memory.NewInMemoryItemRepository()
	categoryRepo := memory.NewInMemoryCategoryRepository(itemRepo)
	userRepo := memory.NewInMemoryUserRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	owner := model.NewUser("google_7", "owner@example.com", "Owner")
	require.NoError(t, userRepo.Create(context.Background(), owner))

	categoryService := service.NewCategoryService(categoryRepo, userRepo, log)
	itemService := service.NewItemService(itemRepo, categoryRepo, log)

	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)

	categoryHandler := handler.NewCategoryHandler(categoryService)
	itemHandler := handler.NewItemHandler(itemService)

	inject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			handler.SetCurrentUser(c, owner)
			return next(c)
		}
	}

	api := e.Group("/api", inject)
	api.POST("/categories", categoryHandler.CreateCategory)
	api.GET("/categories", categoryHandler.GetCategories)
	api.GET("/categories/:id", categoryHandler.GetCategory)
	api.PUT("/categories/:id", categoryHandler.UpdateCategory)
	api.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	api.POST("/categories/:id/items", itemHandler.CreateItem)
	api.GET("/categories/:id/items", itemHandler.GetItems)

	return e, owner
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateThenDuplicateScenario(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/categories", `{"name":"Electronics","description":"gadgets"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderLocation))

	var created categoryBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Electronics", created.Name)
	assert.Equal(t, 0, created.ChildCount)

	rec = do(e, http.MethodPost, "/api/categories", `{"name":"electronics"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusConflict, envelope.Status)
	assert.Equal(t, "DUPLICATE_RESOURCE", envelope.ErrorCode)
	assert.Equal(t, "/api/categories", envelope.Path)
	assert.NotEmpty(t, envelope.Timestamp)
}

func TestValidationFailureCarriesFieldErrors(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/categories", `{"name":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_FAILED", envelope.ErrorCode)
	require.Len(t, envelope.FieldErrors, 1)
	assert.Equal(t, "Name", envelope.FieldErrors[0].Field)
	assert.Equal(t, "x", envelope.FieldErrors[0].RejectedValue)
}

func TestReadMissingCategory(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/categories/no-such-id", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "RESOURCE_NOT_FOUND", envelope.ErrorCode)
}

func TestListReturnsEmptyArray(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestUpdateAndDeleteFlow(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/categories", `{"name":"Electronics"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created categoryBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Partial update: description only.
	rec = do(e, http.MethodPut, "/api/categories/"+created.ID, `{"description":"gadgets"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated categoryBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Electronics", updated.Name)
	assert.Equal(t, "gadgets", updated.Description)

	// An item blocks deletion.
	rec = do(e, http.MethodPost, "/api/categories/"+created.ID+"/items", `{"title":"Laptop"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodDelete, "/api/categories/"+created.ID, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "BUSINESS_VALIDATION_FAILED", envelope.ErrorCode)
	assert.Contains(t, envelope.Message, "Electronics")

	// Archive the category instead: still readable, still listed on demand.
	rec = do(e, http.MethodPut, "/api/categories/"+created.ID, `{"archived":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/categories?includeArchived=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.ID)
}

func TestInternalFaultIsMasked(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("pq: connection refused on host db-internal-1")
	})

	rec := do(e, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INTERNAL_ERROR", envelope.ErrorCode)
	assert.Equal(t, "An unexpected error occurred", envelope.Message)
	assert.NotContains(t, rec.Body.String(), "db-internal-1")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "RESOURCE_NOT_FOUND", envelope.ErrorCode)
	assert.Equal(t, "/nope", envelope.Path)
}
