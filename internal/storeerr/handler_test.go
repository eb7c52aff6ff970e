package storeerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func writeException(code int) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Index: 0, Code: code, Message: fmt.Sprintf("server error %d", code)},
		},
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "no documents in books",
			err:        Wrap("books", "find", mongo.ErrNoDocuments),
			wantStatus: http.StatusNotFound,
			wantCode:   "BOOK_NOT_FOUND",
			wantMsg:    "Book not found",
		},
		{
			name:       "no documents without collection",
			err:        mongo.ErrNoDocuments,
			wantStatus: http.StatusNotFound,
			wantCode:   "RECORD_NOT_FOUND",
			wantMsg:    "Record not found",
		},
		{
			name:       "duplicate key",
			err:        Wrap("books", "insert", writeException(11000)),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BOOK_ALREADY_EXISTS",
			wantMsg:    "A book with this identifier already exists",
		},
		{
			name:       "document validation",
			err:        Wrap("reading_lists", "replace", writeException(documentValidationFailure)),
			wantStatus: http.StatusBadRequest,
			wantCode:   "READING_LIST_INVALID",
			wantMsg:    "The reading list does not meet the collection's required conditions",
		},
		{
			name:       "unknown failure keeps message",
			err:        Wrap("books", "find", errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "find books: connection refused",
		},
		{
			name:       "context deadline",
			err:        Wrap("books", "delete", context.DeadlineExceeded),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "delete books: context deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleError(tt.err)

			var httpErr *errs.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewTooManyRequestsError("slow down")
	assert.Same(t, original, HandleError(original))
	assert.NoError(t, HandleError(nil))
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, NotFound, ErrCode(Wrap("books", "find", mongo.ErrNoDocuments)))
	assert.Equal(t, DuplicateKey, ErrCode(writeException(11000)))
	assert.Equal(t, DocumentInvalid, ErrCode(writeException(121)))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
	assert.Equal(t, Other, ErrCode(nil))
	assert.Equal(t, NotFound, ErrCode(fmt.Errorf("lookup: %w", mongo.ErrNoDocuments)))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("books", "find", nil))

	err := Wrap("books", "find", mongo.ErrNoDocuments)
	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "books", opErr.Collection)
	assert.Equal(t, "find", opErr.Op)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestHumanizeText(t *testing.T) {
	assert.Equal(t, "Publication Date", humanizeText("publication_date"))
	assert.Equal(t, "", humanizeText(""))
	assert.Equal(t, "Book", getEntityName("books"))
}
