package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type shelfPayload struct {
	ID       string `param:"id"`
	Name     string `json:"name" validate:"required,max=10"`
	Location string `json:"shelf_location" validate:"required"`
}

func (p *shelfPayload) Validate() error {
	return Validator().Struct(p)
}

type describedPayload struct {
	Name string `json:"name" validate:"required"`
}

func (p *describedPayload) Validate() error {
	return Describe("name is mandatory", Validator().Struct(p))
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "name", Message: "is reserved"}}
}

func newContext(method, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/shelves/abc", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")
	return c
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"fiction","shelf_location":"A1"}`)

	var p shelfPayload
	require.NoError(t, BindAndValidate(c, &p))
	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, "fiction", p.Name)
	assert.Equal(t, "A1", p.Location)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &shelfPayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_FieldErrorsUseJSONNames(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"a very long shelf name"}`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &shelfPayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "must not exceed 10 characters"},
		{Field: "shelf_location", Error: "is required"},
	}, httpErr.Errors)
}

func TestBindAndValidate_DescribedMessage(t *testing.T) {
	c := newContext(http.MethodPost, `{}`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &describedPayload{}))
	assert.Equal(t, "name is mandatory", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(http.MethodPost, `{}`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &customPayload{}))
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is reserved"}}, httpErr.Errors)
}

func TestBindAndValidate_UnsupportedMediaTypeIgnoresBody(t *testing.T) {
	c := newContext(http.MethodPut, `name=fiction`)
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMETextPlain)

	var p shelfPayload
	httpErr := requireHTTPError(t, BindAndValidate(c, &p))
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Equal(t, "abc", p.ID)
	assert.Empty(t, p.Name)
}

func TestIsValidObjectID(t *testing.T) {
	assert.True(t, IsValidObjectID("5f2b6c1e9d1e8a3b4c5d6e7f"))
	assert.True(t, IsValidObjectID("5F2B6C1E9D1E8A3B4C5D6E7F"))
	assert.False(t, IsValidObjectID(""))
	assert.False(t, IsValidObjectID("5f2b6c1e9d1e8a3b4c5d6e7"))
	assert.False(t, IsValidObjectID("5f2b6c1e9d1e8a3b4c5d6e7f0"))
	assert.False(t, IsValidObjectID("zzzzzzzzzzzzzzzzzzzzzzzz"))
	assert.False(t, IsValidObjectID("5f2b6c1e9d1e8a3b4c5d6e7f\n"))
}

func TestIsValidObjectID_Property(t *testing.T) {
	hex := rapid.StringMatching(`[0-9a-fA-F]{24}`)
	rapid.Check(t, func(t *rapid.T) {
		if id := hex.Draw(t, "id"); !IsValidObjectID(id) {
			t.Fatalf("rejected valid id %q", id)
		}
	})

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		want := len(s) == 24 && strings.Trim(s, "0123456789abcdefABCDEF") == ""
		if got := IsValidObjectID(s); got != want {
			t.Fatalf("IsValidObjectID(%q) = %v, want %v", s, got, want)
		}
	})
}
