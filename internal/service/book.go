package service

import (
	"context"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/model/book"
	"github.com/deppfellow/bookshelf/internal/validation"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookRepository is the store BookService depends on.
type BookRepository interface {
	List(ctx context.Context) ([]book.Book, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*book.Book, error)
	Create(ctx context.Context, b *book.Book) error
	Update(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// InvalidBookIDCode marks an identifier that is not 24 hex characters.
const InvalidBookIDCode = "INVALID_BOOK_ID"

type BookService struct {
	repo   BookRepository
	logger *zerolog.Logger
}

func NewBookService(repo BookRepository, logger *zerolog.Logger) *BookService {
	return &BookService{repo: repo, logger: logger}
}

// log returns the request-scoped logger carried by ctx, falling back to the
// service logger outside a request.
func (s *BookService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

// ListBooks returns every book. The slice is empty, not nil, when there are none.
func (s *BookService) ListBooks(ctx context.Context) ([]book.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []book.Book{}
	}
	return books, nil
}

// CreateBook persists a new book built from fields.
func (s *BookService) CreateBook(ctx context.Context, fields book.Fields) (*book.Book, error) {
	b := book.New(fields)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log(ctx).Info().
		Str("book_id", b.ID.Hex()).
		Msg("book created")

	return b, nil
}

// GetBook looks a book up by its hex identifier.
//
// An identifier of the wrong shape is rejected with a 404 INVALID_BOOK_ID
// before the store is queried.
func (s *BookService) GetBook(ctx context.Context, id string) (*book.Book, error) {
	oid, err := ParseBookID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

// UpdateBook merges fields into current and persists the result. current is
// not modified.
func (s *BookService) UpdateBook(ctx context.Context, current *book.Book, fields book.Fields) (*book.Book, error) {
	updated := current.Merge(fields)
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.log(ctx).Info().
		Str("book_id", updated.ID.Hex()).
		Msg("book updated")

	return &updated, nil
}

// DeleteBook removes b and returns it as it was before deletion.
func (s *BookService) DeleteBook(ctx context.Context, b *book.Book) (*book.Book, error) {
	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return nil, err
	}

	s.log(ctx).Info().
		Str("book_id", b.ID.Hex()).
		Msg("book deleted")

	return b, nil
}

// ParseBookID converts a hex identifier into an ObjectID.
func ParseBookID(id string) (primitive.ObjectID, error) {
	if !validation.IsValidObjectID(id) {
		return primitive.NilObjectID, invalidBookID()
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, invalidBookID().WithCause(err)
	}
	return oid, nil
}

func invalidBookID() *errs.HTTPError {
	code := InvalidBookIDCode
	return errs.NewNotFoundError("The book id is not valid", true, &code)
}
