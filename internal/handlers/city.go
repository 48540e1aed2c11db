package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/georef/geo-reference-api/internal/dto"
	apierrors "github.com/georef/geo-reference-api/internal/errors"
	"github.com/georef/geo-reference-api/internal/middleware"
	"github.com/georef/geo-reference-api/internal/services"
)

// CityHandler coordinates city HTTP handlers.
type CityHandler struct {
	cityService *services.CityService
}

// NewCityHandler creates a new CityHandler.
func NewCityHandler(cityService *services.CityService) *CityHandler {
	return &CityHandler{
		cityService: cityService,
	}
}

// ListCities returns cities, filterable by partial name match. Soft-deleted
// rows are excluded.
func (h *CityHandler) ListCities(c *gin.Context) {
	filter := listFilterFromQuery(c)

	cities, total, err := h.cityService.ListCities(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch cities")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cities":     dto.ToCityDTOs(cities),
		"pagination": paginationResponse(filter, total),
	})
}

// GetCity returns a single city with its country and ports.
func (h *CityHandler) GetCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	city, err := h.cityService.GetCity(id)
	if err != nil {
		respondCityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCityDTO(*city))
}

// CreateCity creates a city under an existing country.
func (h *CityHandler) CreateCity(c *gin.Context) {
	type CreateCityRequest struct {
		Name      string `json:"name" binding:"required"`
		CountryID uint64 `json:"country_id"`
	}

	var req CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	city, err := h.cityService.CreateCity(services.CreateCityInput{
		Name:      req.Name,
		CountryID: req.CountryID,
	})
	if err != nil {
		respondCityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCityDTO(*city))
}

// UpdateCity replaces the city's mutable fields.
func (h *CityHandler) UpdateCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateCityRequest struct {
		Name      string `json:"name" binding:"required"`
		CountryID uint64 `json:"country_id" binding:"required"`
	}

	var req UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	city, err := h.cityService.UpdateCity(id, services.UpdateCityInput{
		Name:      &req.Name,
		CountryID: &req.CountryID,
	})
	if err != nil {
		respondCityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCityDTO(*city))
}

// PatchCity applies a partial update.
func (h *CityHandler) PatchCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type PatchCityRequest struct {
		Name      *string `json:"name"`
		CountryID *uint64 `json:"country_id"`
	}

	var req PatchCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	city, err := h.cityService.UpdateCity(id, services.UpdateCityInput{
		Name:      req.Name,
		CountryID: req.CountryID,
	})
	if err != nil {
		respondCityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCityDTO(*city))
}

// DeleteCity marks the city deleted. With ?purge=true an admin can
// physically remove it, cascading to its ports.
func (h *CityHandler) DeleteCity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if c.Query("purge") == "true" {
		if !middleware.IsAdmin(c) {
			apierrors.Forbidden(c, "Administrator role required to purge")
			return
		}
		if err := h.cityService.PurgeCity(id); err != nil {
			respondCityError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "City purged"})
		return
	}

	if err := h.cityService.DeleteCity(id); err != nil {
		respondCityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "City deleted"})
}

func respondCityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidName):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"name": err.Error()})
	case errors.Is(err, services.ErrCountryRequired):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"country_id": err.Error()})
	case errors.Is(err, services.ErrCityNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCityNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
