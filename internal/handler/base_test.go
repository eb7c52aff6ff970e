package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/bookshelf/internal/model/book"
	"github.com/deppfellow/bookshelf/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayload_ReturnsFreshValue(t *testing.T) {
	template := &book.PatchBookPayload{ID: "stale"}
	template.Title = "stale"

	got := newPayload(template)

	require.NotNil(t, got)
	assert.NotSame(t, template, got)
	assert.Empty(t, got.ID)
	assert.Empty(t, got.Title)
}

func TestCollectionLen(t *testing.T) {
	assert.Equal(t, 0, collectionLen(nil))
	assert.Equal(t, 0, collectionLen([]book.Book{}))
	assert.Equal(t, 2, collectionLen([]book.Book{{}, {}}))
	assert.Equal(t, 0, collectionLen("not a slice"))
}

func TestHandleList(t *testing.T) {
	s, _ := testutil.NewServer(t, nil)
	h := NewHandler(s)
	e := echo.New()

	items := []string{}
	list := HandleList(h, func(c echo.Context, _ *book.ListBooksPayload) ([]string, error) {
		return items, nil
	}, http.StatusOK, &book.ListBooksPayload{})

	rec := httptest.NewRecorder()
	require.NoError(t, list(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	items = []string{"a", "b"}
	rec = httptest.NewRecorder()
	require.NoError(t, list(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["a","b"]`, rec.Body.String())
}

func TestHandle_ValidationErrorStopsHandler(t *testing.T) {
	s, _ := testutil.NewServer(t, nil)
	e := echo.New()

	called := false
	create := Handle(NewHandler(s), func(c echo.Context, p *book.CreateBookPayload) (*book.Book, error) {
		called = true
		return nil, nil
	}, http.StatusCreated, &book.CreateBookPayload{})

	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"Dune"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	err := create(e.NewContext(req, httptest.NewRecorder()))
	assert.Error(t, err)
	assert.False(t, called)
}
