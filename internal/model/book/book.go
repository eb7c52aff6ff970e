// Package book holds the Book entity, the request payloads of the book
// endpoints and the rule used to merge an update into a stored book.
package book

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionName is the default collection books are stored in.
const CollectionName = "books"

// Book is the single entity managed by the service.
//
// ID is assigned once at creation and never changes. It is stored as the
// document _id and exposed to clients as a 24 character hex string.
type Book struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Title           string             `json:"title" bson:"title"`
	Author          string             `json:"author" bson:"author"`
	Genre           string             `json:"genre" bson:"genre"`
	PublicationDate string             `json:"publication_date" bson:"publication_date"`
}

// Fields is the set of text fields a request may carry. An empty value means
// the field was absent or falsy.
type Fields struct {
	Title           string
	Author          string
	Genre           string
	PublicationDate string
}

// New builds a book from fields with a freshly generated identifier.
func New(fields Fields) *Book {
	return &Book{
		ID:              primitive.NewObjectID(),
		Title:           fields.Title,
		Author:          fields.Author,
		Genre:           fields.Genre,
		PublicationDate: fields.PublicationDate,
	}
}

// Empty reports whether no field carries a value.
func (f Fields) Empty() bool {
	return f.Title == "" && f.Author == "" && f.Genre == "" && f.PublicationDate == ""
}

// Merge returns a copy of b where every non-empty field of f replaces the
// stored value. Empty fields keep the stored value, so a field can never be
// cleared through an update.
func (b Book) Merge(f Fields) Book {
	if f.Title != "" {
		b.Title = f.Title
	}
	if f.Author != "" {
		b.Author = f.Author
	}
	if f.Genre != "" {
		b.Genre = f.Genre
	}
	if f.PublicationDate != "" {
		b.PublicationDate = f.PublicationDate
	}
	return b
}
