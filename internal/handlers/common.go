package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/georef/geo-reference-api/internal/errors"
	"github.com/georef/geo-reference-api/internal/middleware"
	"github.com/georef/geo-reference-api/internal/repository"
	"github.com/georef/geo-reference-api/internal/utils"
)

// parseIDParam extracts the numeric :id path parameter. On failure it writes
// the 400 response and returns false.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid resource ID")
		return 0, false
	}
	return id, true
}

// listFilterFromQuery builds the common list filter: case-insensitive
// partial name match, ordering, pagination. Soft-deleted rows are only
// visible to admins asking for them explicitly.
func listFilterFromQuery(c *gin.Context) repository.ListFilter {
	params := utils.GetPaginationParams(c)

	filter := repository.ListFilter{
		Name:      c.Query("name"),
		OrderBy:   c.Query("order_by"),
		OrderDesc: c.Query("order") == "desc",
		Page:      params.Page,
		Limit:     params.Limit,
	}
	if c.Query("include_deleted") == "true" && middleware.IsAdmin(c) {
		filter.IncludeDeleted = true
	}
	return filter
}

func paginationResponse(filter repository.ListFilter, total int64) utils.PaginationResponse {
	return utils.PaginationResponse{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	}
}
