package handling_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"promo_store_server/handling"
	"promo_store_server/lib"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	cases := map[string]struct {
		err  error
		want int
	}{
		"validation":     {lib.NewValidationError("name", "is required"), http.StatusBadRequest},
		"malformed body": {fmt.Errorf("%w: malformed", lib.ErrValidation), http.StatusBadRequest},
		"empty cart":     {lib.ErrEmptyCart, http.StatusBadRequest},
		"not found":      {fmt.Errorf("product 4: %w", lib.ErrNotFound), http.StatusNotFound},
		"credentials":    {lib.ErrInvalidCredentials, http.StatusUnauthorized},
		"expired":        {lib.ErrExpiredToken, http.StatusUnauthorized},
		"cart changed":   {lib.ErrCartChanged, http.StatusConflict},
		"conflict":       {lib.ErrConflict, http.StatusConflict},
		"unknown":        {errors.New("boom"), http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handling.HandleError(tc.err, "Thing not found", logger, rec)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders?page=3&page_size=25", nil)
	page, size, err := handling.ParsePagination(req)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	page, _, err = handling.ParsePagination(req)
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	req = httptest.NewRequest(http.MethodGet, "/orders?page_size=-1", nil)
	_, _, err = handling.ParsePagination(req)
	assert.ErrorIs(t, err, lib.ErrValidation)
}

func TestParseIDParam(t *testing.T) {
	r := chi.NewRouter()

	var got int64
	var gotErr error
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = handling.ParseIDParam(r, "id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	assert.ErrorIs(t, gotErr, lib.ErrValidation)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/0", nil))
	assert.ErrorIs(t, gotErr, lib.ErrValidation)
}
