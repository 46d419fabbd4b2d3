package util

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
)

// ParsePage reads the page and limit query params. A missing page is 1 and
// a missing limit takes the configured default.
func ParsePage(c *gin.Context, limits repository.Limits) (repository.Page, error) {
	number := 1
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return repository.Page{}, apperrors.InvalidInput("page", "page must be an integer")
		}
		number = n
	}

	size := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return repository.Page{}, apperrors.InvalidInput("limit", "limit must be an integer")
		}
		size = n
	}

	page := limits.Page(number, size)
	if err := page.Validate(); err != nil {
		return repository.Page{}, err
	}
	return page, nil
}
