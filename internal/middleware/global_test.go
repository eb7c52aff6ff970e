package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/storeerr"
	"github.com/deppfellow/bookshelf/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func handleError(t *testing.T, env string, err error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()

	cfg := testutil.Config()
	cfg.Observability.Environment = env
	s, _ := testutil.NewServer(t, cfg)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/books", nil), rec)

	NewGlobalMiddlewares(s).GlobalErrorHandler(err, c)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	code := "BOOK_NOT_FOUND"

	tests := []struct {
		name       string
		env        string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "http error passes through",
			err:        errs.NewNotFoundError("Book not found", true, &code),
			wantStatus: http.StatusNotFound,
			wantCode:   "BOOK_NOT_FOUND",
			wantMsg:    "Book not found",
		},
		{
			name:       "route not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Route not found",
		},
		{
			name:       "echo error keeps status",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "METHOD_NOT_ALLOWED",
			wantMsg:    "Method Not Allowed",
		},
		{
			name:       "store miss",
			err:        storeerr.Wrap("books", "find", mongo.ErrNoDocuments),
			wantStatus: http.StatusNotFound,
			wantCode:   "BOOK_NOT_FOUND",
			wantMsg:    "Book not found",
		},
		{
			name:       "internal error outside production",
			env:        "development",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "boom",
		},
		{
			name:       "internal error in production",
			env:        "production",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handleError(t, tt.env, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestGlobalErrorHandler_FieldErrors(t *testing.T) {
	err := errs.NewBadRequestError("the fields title are required", true, nil, []errs.FieldError{
		{Field: "title", Error: "is required"},
	}, nil)

	rec, body := handleError(t, "test", err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, body.Override)
	assert.Equal(t, []errs.FieldError{{Field: "title", Error: "is required"}}, body.Errors)
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFromError(http.StatusOK, nil))
	assert.Equal(t, http.StatusTooManyRequests, statusFromError(http.StatusOK, errs.NewTooManyRequestsError("slow down")))
	assert.Equal(t, http.StatusMethodNotAllowed, statusFromError(http.StatusOK, echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(http.StatusOK, errors.New("boom")))
}
