package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProviderHandlerParams holds dependencies for ProviderHandler, injected by Fx.
type ProviderHandlerParams struct {
	fx.In

	ProviderUC usecase.ProviderUsecase
	Logger     *slog.Logger
}

// ProviderHandler holds dependencies for the provider directory handlers.
type ProviderHandler struct {
	providerUC usecase.ProviderUsecase
	logger     *slog.Logger
}

// NewProviderHandler is the constructor for ProviderHandler.
func NewProviderHandler(params ProviderHandlerParams) *ProviderHandler {
	return &ProviderHandler{
		providerUC: params.ProviderUC,
		logger:     params.Logger,
	}
}

// ListProviders returns all users with a provider profile.
func (h *ProviderHandler) ListProviders(c echo.Context) error {
	providers, err := h.providerUC.ListProviders(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, providers)
}

// GetProvider loads a provider's public profile.
func (h *ProviderHandler) GetProvider(c echo.Context) error {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid provider ID")
	}

	provider, err := h.providerUC.GetProvider(c.Request().Context(), providerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, provider)
}

// NearbyProviders returns providers within a radius of a point, nearest first.
// Query parameters: lat, lon (required), radius_km (optional).
func (h *ProviderHandler) NearbyProviders(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return response.BadRequest(c, "INVALID_INPUT", "Valid 'lat' query parameter is required")
	}

	lon, err := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return response.BadRequest(c, "INVALID_INPUT", "Valid 'lon' query parameter is required")
	}

	// radius_km is optional; zero falls back to the default radius.
	radiusKm, _ := strconv.ParseFloat(c.QueryParam("radius_km"), 64)
	if radiusKm < 0 {
		return response.BadRequest(c, "INVALID_INPUT", "radius_km must not be negative")
	}

	nearby, err := h.providerUC.NearbyProviders(c.Request().Context(), &usecase.NearbyProvidersInput{
		Latitude:  lat,
		Longitude: lon,
		RadiusKm:  radiusKm,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nearby)
}
