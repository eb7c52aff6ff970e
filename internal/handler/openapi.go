package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/bookshelf/internal/server"
	"github.com/deppfellow/bookshelf/static"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API docs UI and the OpenAPI document it loads.
type OpenAPIHandler struct {
	Handler
	files fs.FS
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		files:   static.Files,
	}
}

// ServeOpenAPIUI serves openapi.html with caching disabled so doc changes
// show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	page, err := fs.ReadFile(h.files, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}

// FileSystem exposes the embedded docs for the /static route.
func (h *OpenAPIHandler) FileSystem() fs.FS {
	return h.files
}
