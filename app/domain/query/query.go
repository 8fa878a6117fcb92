package query

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Pagination struct {
	Limit int
}

// GetPaginationFromQuery reads ?limit=, capping it at max.
func GetPaginationFromQuery(reqCtx *gin.Context, defaultLimit int, max int) (*Pagination, error) {
	limitStr := reqCtx.Query("limit")
	if limitStr == "" {
		return &Pagination{Limit: defaultLimit}, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return nil, fmt.Errorf("invalid limit number")
	}
	if limit > max {
		limit = max
	}
	return &Pagination{Limit: limit}, nil
}
