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

// ContinentHandler coordinates continent HTTP handlers.
type ContinentHandler struct {
	continentService *services.ContinentService
}

// NewContinentHandler creates a new ContinentHandler.
func NewContinentHandler(continentService *services.ContinentService) *ContinentHandler {
	return &ContinentHandler{
		continentService: continentService,
	}
}

// ListContinents returns continents, filterable by partial name match.
func (h *ContinentHandler) ListContinents(c *gin.Context) {
	filter := listFilterFromQuery(c)

	continents, total, err := h.continentService.ListContinents(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch continents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"continents": dto.ToContinentDTOs(continents),
		"pagination": paginationResponse(filter, total),
	})
}

// GetContinent returns a single continent with its countries.
func (h *ContinentHandler) GetContinent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	continent, err := h.continentService.GetContinent(id)
	if err != nil {
		respondContinentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContinentDTO(*continent))
}

// CreateContinent creates a continent. The slug is derived from the name
// and the author is the acting principal.
func (h *ContinentHandler) CreateContinent(c *gin.Context) {
	type CreateContinentRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateContinentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	principalID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	continent, err := h.continentService.CreateContinent(services.CreateContinentInput{
		Name:     req.Name,
		AuthorID: principalID,
	})
	if err != nil {
		respondContinentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContinentDTO(*continent))
}

// UpdateContinent replaces the continent's name; the slug follows.
func (h *ContinentHandler) UpdateContinent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateContinentRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateContinentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	continent, err := h.continentService.RenameContinent(id, req.Name)
	if err != nil {
		respondContinentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContinentDTO(*continent))
}

// PatchContinent applies a partial update; only the name is mutable.
func (h *ContinentHandler) PatchContinent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type PatchContinentRequest struct {
		Name *string `json:"name"`
	}

	var req PatchContinentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name == nil {
		continent, err := h.continentService.GetContinent(id)
		if err != nil {
			respondContinentError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToContinentDTO(*continent))
		return
	}

	continent, err := h.continentService.RenameContinent(id, *req.Name)
	if err != nil {
		respondContinentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContinentDTO(*continent))
}

// DeleteContinent removes a continent outright; it conflicts while
// countries still belong to it.
func (h *ContinentHandler) DeleteContinent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.continentService.DeleteContinent(id); err != nil {
		respondContinentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Continent deleted"})
}

func respondContinentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidName):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"name": err.Error()})
	case errors.Is(err, services.ErrContinentNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrContinentHasChildren):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrContinentNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
