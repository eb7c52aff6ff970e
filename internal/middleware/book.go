package middleware

import (
	"context"

	"github.com/deppfellow/bookshelf/internal/model/book"
	"github.com/labstack/echo/v4"
)

// BookKey is the Echo context key of the book loaded by BookLoader.
const BookKey = "book"

// BookFinder looks a book up by its hex identifier.
type BookFinder interface {
	GetBook(ctx context.Context, id string) (*book.Book, error)
}

// BookLoader resolves the :id path parameter of single-book routes.
type BookLoader struct {
	finder BookFinder
}

func NewBookLoader(finder BookFinder) *BookLoader {
	return &BookLoader{finder: finder}
}

// Load fetches the book named by :id and attaches it to the request before
// calling the next handler.
//
// A malformed id is answered with 404 INVALID_BOOK_ID without querying the
// store. A missing book ends in 404 BOOK_NOT_FOUND and a store failure in
// 500, both through the global error handler.
func (l *BookLoader) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := l.finder.GetBook(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}

		c.Set(BookKey, b)
		return next(c)
	}
}

// GetBook returns the book attached by BookLoader, or nil.
func GetBook(c echo.Context) *book.Book {
	if b, ok := c.Get(BookKey).(*book.Book); ok {
		return b
	}
	return nil
}
