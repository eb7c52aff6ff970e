package router

import (
	"net/http"

	"github.com/deppfellow/bookshelf/internal/handler"
	"github.com/deppfellow/bookshelf/internal/middleware"
	"github.com/deppfellow/bookshelf/internal/model/book"
	"github.com/labstack/echo/v4"
)

// registerBookRoutes registers /books. Routes addressing one book run behind
// the BookLoader, which rejects malformed ids and loads the book.
func registerBookRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	books := r.Group("/books")
	load := mw.BookLoader.Load

	books.GET("", handler.HandleList(h.Book.Handler, h.Book.ListBooks, http.StatusOK, &book.ListBooksPayload{}))
	books.POST("", handler.Handle(h.Book.Handler, h.Book.CreateBook, http.StatusCreated, &book.CreateBookPayload{}))

	books.GET("/:id", handler.Handle(h.Book.Handler, h.Book.GetBook, http.StatusOK, &book.GetBookPayload{}), load)
	books.PUT("/:id", handler.Handle(h.Book.Handler, h.Book.UpdateBook, http.StatusOK, &book.UpdateBookPayload{}), load)
	books.PATCH("/:id", handler.Handle(h.Book.Handler, h.Book.PatchBook, http.StatusOK, &book.PatchBookPayload{}), load)
	books.DELETE("/:id", handler.Handle(h.Book.Handler, h.Book.DeleteBook, http.StatusOK, &book.DeleteBookPayload{}), load)
}
