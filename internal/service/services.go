package service

import (
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/server"
)

type Services struct {
	Book *BookService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Book: NewBookService(repos.Book, s.Logger),
	}, nil
}
