package handler

import (
	"net/http"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/middleware"
	"github.com/deppfellow/bookshelf/internal/model/book"
	"github.com/deppfellow/bookshelf/internal/server"
	"github.com/deppfellow/bookshelf/internal/service"
	"github.com/labstack/echo/v4"
)

// BookHandler serves the /books endpoints.
//
// Single-book routes run behind middleware.BookLoader, so the addressed book
// is already loaded when these methods are called.
type BookHandler struct {
	Handler
	bookService *service.BookService
}

func NewBookHandler(s *server.Server, bookService *service.BookService) *BookHandler {
	return &BookHandler{
		Handler:     NewHandler(s),
		bookService: bookService,
	}
}

func (h *BookHandler) ListBooks(c echo.Context, _ *book.ListBooksPayload) ([]book.Book, error) {
	return h.bookService.ListBooks(c.Request().Context())
}

func (h *BookHandler) CreateBook(c echo.Context, payload *book.CreateBookPayload) (*book.Book, error) {
	return h.bookService.CreateBook(c.Request().Context(), payload.Fields())
}

func (h *BookHandler) GetBook(c echo.Context, _ *book.GetBookPayload) (*book.Book, error) {
	return loadedBook(c)
}

func (h *BookHandler) UpdateBook(c echo.Context, payload *book.UpdateBookPayload) (*book.Book, error) {
	current, err := loadedBook(c)
	if err != nil {
		return nil, err
	}
	return h.bookService.UpdateBook(c.Request().Context(), current, payload.Fields())
}

func (h *BookHandler) PatchBook(c echo.Context, payload *book.PatchBookPayload) (*book.Book, error) {
	current, err := loadedBook(c)
	if err != nil {
		return nil, err
	}
	return h.bookService.UpdateBook(c.Request().Context(), current, payload.Fields())
}

func (h *BookHandler) DeleteBook(c echo.Context, _ *book.DeleteBookPayload) (*book.Book, error) {
	current, err := loadedBook(c)
	if err != nil {
		return nil, err
	}
	return h.bookService.DeleteBook(c.Request().Context(), current)
}

// loadedBook returns the book attached by BookLoader. A route registered
// without the loader is a wiring bug and answers 500.
func loadedBook(c echo.Context) (*book.Book, error) {
	b := middleware.GetBook(c)
	if b == nil {
		return nil, errs.NewInternalServerError().WithMessage(http.StatusText(http.StatusInternalServerError) + ": book not loaded")
	}
	return b, nil
}
