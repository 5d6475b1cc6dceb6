package lib

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	Slug  string `json:"slug" validate:"omitempty,slug"`
	Color string `json:"color" validate:"omitempty,hsltriple"`
}

func TestExtractAndValidateBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ann","email":"ann@example.com","slug":"custom-products","color":"221 83% 53%"}`))

	body, err := ExtractAndValidateBody[sampleBody](r)
	require.NoError(t, err)
	assert.Equal(t, "Ann", body.Name)
}

func TestExtractAndValidateBodyReportsJSONFieldNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"   ","email":"nope"}`))

	_, err := ExtractAndValidateBody[sampleBody](r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ElementsMatch(t, []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "email", Message: "must be a valid email address"},
	}, ve.Errors)
}

func TestExtractAndValidateBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ann","email":"ann@example.com","admin":true}`))

	_, err := ExtractAndValidateBody[sampleBody](r)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExtractAndValidateBodyRejectsEmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))

	_, err := ExtractAndValidateBody[sampleBody](r)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIsHSLTriple(t *testing.T) {
	valid := []string{"0 0% 100%", "221 83% 53%", "360 100% 0%", "12.5 40.2% 3%"}
	invalid := []string{"", "red", "221 83 53", "361 10% 10%", "10 101% 10%", "hsl(221, 83%, 53%)"}

	for _, s := range valid {
		assert.True(t, IsHSLTriple(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsHSLTriple(s), s)
	}
}
