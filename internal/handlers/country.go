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

// CountryHandler coordinates country HTTP handlers.
type CountryHandler struct {
	countryService *services.CountryService
}

// NewCountryHandler creates a new CountryHandler.
func NewCountryHandler(countryService *services.CountryService) *CountryHandler {
	return &CountryHandler{
		countryService: countryService,
	}
}

// ListCountries returns countries, filterable by partial name match.
// Soft-deleted rows are excluded.
func (h *CountryHandler) ListCountries(c *gin.Context) {
	filter := listFilterFromQuery(c)

	countries, total, err := h.countryService.ListCountries(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch countries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"countries":  dto.ToCountryDTOs(countries),
		"pagination": paginationResponse(filter, total),
	})
}

// GetCountry returns a single country with its continent and cities.
func (h *CountryHandler) GetCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	country, err := h.countryService.GetCountry(id)
	if err != nil {
		respondCountryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCountryDTO(*country))
}

// CreateCountry creates a country under an existing continent.
func (h *CountryHandler) CreateCountry(c *gin.Context) {
	type CreateCountryRequest struct {
		Name         string  `json:"name" binding:"required"`
		PostalCode   *string `json:"postal_code"`
		Abbreviation *string `json:"abbreviation"`
		ContinentID  uint64  `json:"continent_id"`
	}

	var req CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	country, err := h.countryService.CreateCountry(services.CreateCountryInput{
		Name:         req.Name,
		PostalCode:   req.PostalCode,
		Abbreviation: req.Abbreviation,
		ContinentID:  req.ContinentID,
	})
	if err != nil {
		respondCountryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCountryDTO(*country))
}

// UpdateCountry replaces the country's mutable fields.
func (h *CountryHandler) UpdateCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateCountryRequest struct {
		Name         string  `json:"name" binding:"required"`
		PostalCode   *string `json:"postal_code"`
		Abbreviation *string `json:"abbreviation"`
		ContinentID  uint64  `json:"continent_id" binding:"required"`
	}

	var req UpdateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	postal := req.PostalCode
	if postal == nil {
		empty := ""
		postal = &empty
	}
	abbrev := req.Abbreviation
	if abbrev == nil {
		empty := ""
		abbrev = &empty
	}

	country, err := h.countryService.UpdateCountry(id, services.UpdateCountryInput{
		Name:         &req.Name,
		PostalCode:   postal,
		Abbreviation: abbrev,
		ContinentID:  &req.ContinentID,
	})
	if err != nil {
		respondCountryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCountryDTO(*country))
}

// PatchCountry applies a partial update.
func (h *CountryHandler) PatchCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type PatchCountryRequest struct {
		Name         *string `json:"name"`
		PostalCode   *string `json:"postal_code"`
		Abbreviation *string `json:"abbreviation"`
		ContinentID  *uint64 `json:"continent_id"`
	}

	var req PatchCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	country, err := h.countryService.UpdateCountry(id, services.UpdateCountryInput{
		Name:         req.Name,
		PostalCode:   req.PostalCode,
		Abbreviation: req.Abbreviation,
		ContinentID:  req.ContinentID,
	})
	if err != nil {
		respondCountryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCountryDTO(*country))
}

// DeleteCountry marks the country deleted. With ?purge=true an admin can
// physically remove it, cascading to its cities and their ports.
func (h *CountryHandler) DeleteCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if c.Query("purge") == "true" {
		if !middleware.IsAdmin(c) {
			apierrors.Forbidden(c, "Administrator role required to purge")
			return
		}
		if err := h.countryService.PurgeCountry(id); err != nil {
			respondCountryError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Country purged"})
		return
	}

	if err := h.countryService.DeleteCountry(id); err != nil {
		respondCountryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Country deleted"})
}

func respondCountryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrInvalidAbbreviation):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrContinentRequired):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"continent_id": err.Error()})
	case errors.Is(err, services.ErrCountryNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCountryNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
