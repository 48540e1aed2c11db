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

// PortHandler coordinates port HTTP handlers.
type PortHandler struct {
	portService *services.PortService
}

// NewPortHandler creates a new PortHandler.
func NewPortHandler(portService *services.PortService) *PortHandler {
	return &PortHandler{
		portService: portService,
	}
}

// ListPorts returns ports, filterable by partial name match. Soft-deleted
// rows are excluded.
func (h *PortHandler) ListPorts(c *gin.Context) {
	filter := listFilterFromQuery(c)

	ports, total, err := h.portService.ListPorts(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch ports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ports":      dto.ToPortDTOs(ports),
		"pagination": paginationResponse(filter, total),
	})
}

// GetPort returns a single port with its city.
func (h *PortHandler) GetPort(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	port, err := h.portService.GetPort(id)
	if err != nil {
		respondPortError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPortDTO(*port))
}

// CreatePort creates a port under an existing city.
func (h *PortHandler) CreatePort(c *gin.Context) {
	type CreatePortRequest struct {
		Name      string  `json:"name" binding:"required"`
		Latitude  *string `json:"latitude"`
		Longitude *string `json:"longitude"`
		CityID    uint64  `json:"city_id"`
	}

	var req CreatePortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	port, err := h.portService.CreatePort(services.CreatePortInput{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CityID:    req.CityID,
	})
	if err != nil {
		respondPortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPortDTO(*port))
}

// UpdatePort replaces the port's mutable fields.
func (h *PortHandler) UpdatePort(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdatePortRequest struct {
		Name      string  `json:"name" binding:"required"`
		Latitude  *string `json:"latitude"`
		Longitude *string `json:"longitude"`
		CityID    uint64  `json:"city_id" binding:"required"`
	}

	var req UpdatePortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	port, err := h.portService.UpdatePort(id, services.UpdatePortInput{
		Name:      &req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CityID:    &req.CityID,
	})
	if err != nil {
		respondPortError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPortDTO(*port))
}

// PatchPort applies a partial update.
func (h *PortHandler) PatchPort(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type PatchPortRequest struct {
		Name      *string `json:"name"`
		Latitude  *string `json:"latitude"`
		Longitude *string `json:"longitude"`
		CityID    *uint64 `json:"city_id"`
	}

	var req PatchPortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	port, err := h.portService.UpdatePort(id, services.UpdatePortInput{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CityID:    req.CityID,
	})
	if err != nil {
		respondPortError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPortDTO(*port))
}

// DeletePort marks the port deleted. With ?purge=true an admin can
// physically remove it.
func (h *PortHandler) DeletePort(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if c.Query("purge") == "true" {
		if !middleware.IsAdmin(c) {
			apierrors.Forbidden(c, "Administrator role required to purge")
			return
		}
		if err := h.portService.PurgePort(id); err != nil {
			respondPortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Port purged"})
		return
	}

	if err := h.portService.DeletePort(id); err != nil {
		respondPortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Port deleted"})
}

func respondPortError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidName):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"name": err.Error()})
	case errors.Is(err, services.ErrCityRequired):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"city_id": err.Error()})
	case errors.Is(err, services.ErrPortNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
