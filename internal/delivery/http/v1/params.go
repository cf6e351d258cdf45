package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads page and limit; the usecases clamp them.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}
