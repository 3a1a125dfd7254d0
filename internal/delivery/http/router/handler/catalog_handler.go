package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler holds dependencies for category and service listing handlers.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// CreateServiceRequest represents the request body for publishing a listing.
type CreateServiceRequest struct {
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	DurationMin int    `json:"duration_min" validate:"gte=0"`
	ImageURL    string `json:"image_url"`
}

// UpdateServiceRequest represents the editable fields of a listing.
type UpdateServiceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	DurationMin int    `json:"duration_min" validate:"gte=0"`
	ImageURL    string `json:"image_url"`
	Active      bool   `json:"active"`
}

// ListCategories returns all marketplace categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, categories)
}

// GetCategoryBySlug resolves a category from its URL slug.
func (h *CatalogHandler) GetCategoryBySlug(c echo.Context) error {
	category, err := h.catalogUC.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category)
}

// CreateService publishes a new listing owned by the authenticated provider.
func (h *CatalogHandler) CreateService(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid service input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	listing, err := h.catalogUC.CreateService(c.Request().Context(), userID, &usecase.CreateServiceInput{
		CategoryID:  categoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, listing)
}

// GetService loads a single listing.
func (h *CatalogHandler) GetService(c echo.Context) error {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid service ID")
	}

	listing, err := h.catalogUC.GetService(c.Request().Context(), serviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, listing)
}

// BrowseServices lists active listings in a category.
func (h *CatalogHandler) BrowseServices(c echo.Context) error {
	categoryID, err := uuid.Parse(c.QueryParam("category_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
	}

	limit, offset := pagingParams(c)

	listings, err := h.catalogUC.BrowseServices(c.Request().Context(), &usecase.BrowseServicesInput{
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, listings)
}

// SearchServices finds active listings matching a free-text query.
func (h *CatalogHandler) SearchServices(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Search query is required")
	}

	limit, offset := pagingParams(c)

	listings, err := h.catalogUC.SearchServices(c.Request().Context(), &usecase.SearchServicesInput{
		Query:  query,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, listings)
}

// ListMyServices lists all of the authenticated provider's listings.
func (h *CatalogHandler) ListMyServices(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	listings, err := h.catalogUC.ListProviderServices(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, listings)
}

// UpdateService edits one of the authenticated provider's listings.
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid service ID")
	}

	var req UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid service input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.catalogUC.UpdateService(c.Request().Context(), userID, serviceID, &usecase.UpdateServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Service updated"})
}

// DeleteService removes one of the authenticated provider's listings.
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid service ID")
	}

	if err := h.catalogUC.DeleteService(c.Request().Context(), userID, serviceID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Service deleted"})
}

// pagingParams reads limit and offset query parameters, tolerating absence.
// Bounds are enforced by the usecase layer.
func pagingParams(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))

	return limit, offset
}
