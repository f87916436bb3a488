package api

import (
	"strconv"

	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/gin-gonic/gin"
)

// respondError maps an application error to its HTTP response
func respondError(c *gin.Context, err error) {
	body := gin.H{"error": customerrors.GetMessage(err)}
	if details := customerrors.GetDetails(err); len(details) > 0 {
		body["details"] = details
	}
	c.JSON(customerrors.GetStatus(err), body)
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, customerrors.ErrBadRequest)
		return 0, false
	}
	return id, true
}

// listQuery parses limit/offset query parameters. Non-numeric values fall
// back to the defaults; the repositories clamp the range.
func listQuery(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
