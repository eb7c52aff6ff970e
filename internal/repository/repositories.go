package repository

import (
	"github.com/deppfellow/bookshelf/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Book *BookRepository
}

// NewRepositories constructs the repository container over the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Book: NewBookRepository(s.DB.Collection(s.Config.Database.Collection)),
	}
}
