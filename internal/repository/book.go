package repository

import (
	"context"

	"github.com/deppfellow/bookshelf/internal/model/book"
	"github.com/deppfellow/bookshelf/internal/storeerr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookRepository stores books in a single collection.
//
// Every error it returns is a *storeerr.OpError. A missing document is
// reported as mongo.ErrNoDocuments, including for update and delete.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(coll *mongo.Collection) *BookRepository {
	return &BookRepository{coll: coll}
}

func (r *BookRepository) wrap(op string, err error) error {
	return storeerr.Wrap(r.coll.Name(), op, err)
}

// List returns every stored book. The result is never nil.
func (r *BookRepository) List(ctx context.Context) ([]book.Book, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, r.wrap("find", err)
	}

	books := []book.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, r.wrap("find", err)
	}

	return books, nil
}

// GetByID returns the book with id.
func (r *BookRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*book.Book, error) {
	var b book.Book
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&b); err != nil {
		return nil, r.wrap("find", err)
	}
	return &b, nil
}

// Create inserts b. A zero ID is replaced with a new one before the insert.
func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return r.wrap("insert", err)
	}
	return nil
}

// Update replaces the stored document with b.
func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: b.ID}}, b)
	if err != nil {
		return r.wrap("replace", err)
	}
	if res.MatchedCount == 0 {
		return r.wrap("replace", mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes the book with id.
func (r *BookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return r.wrap("delete", err)
	}
	if res.DeletedCount == 0 {
		return r.wrap("delete", mongo.ErrNoDocuments)
	}
	return nil
}
