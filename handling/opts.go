package handling

import (
	"net/http"
	"promo_store_server/database"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ParseProductFilter reads ?category= and ?search=.
func ParseProductFilter(r *http.Request) structs.ProductFilter {
	query := r.URL.Query()
	return structs.ProductFilter{
		Category: strings.TrimSpace(query.Get("category")),
		Search:   strings.TrimSpace(query.Get("search")),
	}
}

// ParsePagination reads ?page= and ?page_size=, falling back to the defaults
// for absent values.
func ParsePagination(r *http.Request) (int, int, error) {
	query := r.URL.Query()
	page, pageSize := 1, database.DefaultPageSize

	if raw := query.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, 0, lib.NewValidationError("page", "must be a positive integer")
		}
		page = v
	}

	if raw := query.Get("page_size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, 0, lib.NewValidationError("page_size", "must be a positive integer")
		}
		pageSize = v
	}

	page, pageSize = database.NormalizePage(page, pageSize)
	return page, pageSize, nil
}

// ParseIDParam reads a positive integer URL parameter.
func ParseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, lib.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}
