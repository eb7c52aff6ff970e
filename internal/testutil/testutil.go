// Package testutil provides test doubles shared by the HTTP layer tests:
// an in-memory book store and a server container without a database.
package testutil

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/deppfellow/bookshelf/internal/config"
	"github.com/deppfellow/bookshelf/internal/metrics"
	"github.com/deppfellow/bookshelf/internal/model/book"
	"github.com/deppfellow/bookshelf/internal/server"
	"github.com/deppfellow/bookshelf/internal/storeerr"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Config returns a valid configuration for tests. Health checks are
// disabled because test servers have no database.
func Config() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.HealthChecks.Enabled = false

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			URI:            "mongodb://localhost:27017",
			Name:           "bookshelf_test",
			Collection:     book.CollectionName,
			ConnectTimeout: 1,
		},
		Observability: obs,
	}
}

// NewServer returns a server container with cfg, a logger writing to the
// returned buffer and a fresh metrics registry. DB is nil.
func NewServer(t testing.TB, cfg *config.Config) (*server.Server, *bytes.Buffer) {
	t.Helper()

	if cfg == nil {
		cfg = Config()
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	return &server.Server{
		Config:  cfg,
		Logger:  &logger,
		Metrics: metrics.New(),
	}, &buf
}

// MemoryBookRepository stores books in a map and reports misses the way
// the Mongo repository does. SetErr makes every call fail, SetErrFor only
// the calls of one operation ("find", "insert", "replace" or "delete").
type MemoryBookRepository struct {
	mu    sync.Mutex
	books map[primitive.ObjectID]book.Book
	order []primitive.ObjectID

	err       error
	opErrs    map[string]error
	afterFind func(id primitive.ObjectID)
	calls     int
}

func NewMemoryBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{
		books:  make(map[primitive.ObjectID]book.Book),
		opErrs: make(map[string]error),
	}
}

func (r *MemoryBookRepository) begin(op string) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return r.opErrs[op]
}

func (r *MemoryBookRepository) List(ctx context.Context) ([]book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin("find"); err != nil {
		return nil, storeerr.Wrap(book.CollectionName, "find", err)
	}

	books := make([]book.Book, 0, len(r.order))
	for _, id := range r.order {
		if b, ok := r.books[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

func (r *MemoryBookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*book.Book, error) {
	b, err := r.getByID(id)

	r.mu.Lock()
	hook := r.afterFind
	r.mu.Unlock()
	if hook != nil {
		hook(id)
	}
	return b, err
}

func (r *MemoryBookRepository) getByID(id primitive.ObjectID) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin("find"); err != nil {
		return nil, storeerr.Wrap(book.CollectionName, "find", err)
	}

	b, ok := r.books[id]
	if !ok {
		return nil, storeerr.Wrap(book.CollectionName, "find", mongo.ErrNoDocuments)
	}
	return &b, nil
}

func (r *MemoryBookRepository) Create(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin("insert"); err != nil {
		return storeerr.Wrap(book.CollectionName, "insert", err)
	}

	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	r.books[b.ID] = *b
	r.order = append(r.order, b.ID)
	return nil
}

func (r *MemoryBookRepository) Update(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin("replace"); err != nil {
		return storeerr.Wrap(book.CollectionName, "replace", err)
	}

	if _, ok := r.books[b.ID]; !ok {
		return storeerr.Wrap(book.CollectionName, "replace", mongo.ErrNoDocuments)
	}
	r.books[b.ID] = *b
	return nil
}

func (r *MemoryBookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin("delete"); err != nil {
		return storeerr.Wrap(book.CollectionName, "delete", err)
	}

	if _, ok := r.books[id]; !ok {
		return storeerr.Wrap(book.CollectionName, "delete", mongo.ErrNoDocuments)
	}
	delete(r.books, id)
	return nil
}

// Put stores b directly, bypassing the injected error and the call count.
func (r *MemoryBookRepository) Put(b book.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		r.order = append(r.order, b.ID)
	}
	r.books[b.ID] = b
}

// Get returns the stored copy of id, bypassing the injected error and the call count.
func (r *MemoryBookRepository) Get(id primitive.ObjectID) (book.Book, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	return b, ok
}

// CallCount returns the number of repository calls made so far.
func (r *MemoryBookRepository) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// SetErr makes every following call fail with err.
func (r *MemoryBookRepository) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// SetErrFor makes every following call of op fail with err.
func (r *MemoryBookRepository) SetErrFor(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opErrs[op] = err
}

// AfterFind registers fn to run after every GetByID, outside the lock.
func (r *MemoryBookRepository) AfterFind(fn func(id primitive.ObjectID)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterFind = fn
}

// Remove deletes id directly, bypassing the injected errors and the call count.
func (r *MemoryBookRepository) Remove(id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.books, id)
}
