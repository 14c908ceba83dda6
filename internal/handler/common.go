package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var dateLayouts = []string{
	time.RFC3339,          // 2025-12-03T00:00:00+05:30
	"2006-01-02T15:04:05", // 2025-12-03T00:00:00
	"2006-01-02",          // 2025-12-03
}

// parseDate accepts the date formats clients actually send.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
