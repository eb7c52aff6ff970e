//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/deppfellow/bookshelf/internal/model/book"
	"github.com/deppfellow/bookshelf/internal/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func startMongo(t *testing.T) *mongo.Collection {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	}

	container, err := testcontainers.GenericContainer(ctx, req)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client.Database("bookshelf_test").Collection(book.CollectionName)
}

func TestBookRepository_Integration(t *testing.T) {
	repo := NewBookRepository(startMongo(t))
	ctx := context.Background()

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	b := &book.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", PublicationDate: "1965"}
	require.NoError(t, repo.Create(ctx, b))
	require.False(t, b.ID.IsZero())

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, *b, *got)

	updated := got.Merge(book.Fields{Genre: "Space Opera"})
	require.NoError(t, repo.Update(ctx, &updated))

	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Space Opera", got.Genre)
	assert.Equal(t, "Dune", got.Title)

	books, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), mongo.ErrNoDocuments)
	assert.ErrorIs(t, repo.Update(ctx, &updated), mongo.ErrNoDocuments)
}

func TestBookRepository_DuplicateID(t *testing.T) {
	repo := NewBookRepository(startMongo(t))
	ctx := context.Background()

	id := primitive.NewObjectID()
	require.NoError(t, repo.Create(ctx, &book.Book{ID: id, Title: "Dune"}))

	err := repo.Create(ctx, &book.Book{ID: id, Title: "Dune Messiah"})
	assert.Equal(t, storeerr.DuplicateKey, storeerr.ErrCode(err))

	var opErr *storeerr.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "books", opErr.Collection)
	assert.Equal(t, "insert", opErr.Op)
}
