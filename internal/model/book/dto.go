package book

import (
	"github.com/deppfellow/bookshelf/internal/validation"
)

const (
	// MissingFieldsMessage is returned when a create request lacks a field.
	MissingFieldsMessage = "the fields title, author, genre, publication_date are required"
	// NoFieldsMessage is returned when a partial update carries no field.
	NoFieldsMessage = "at least one of these fields must be sent: title, author, genre, publication_date"
)

// ------------------------------------------------------------

type ListBooksPayload struct{}

func (p *ListBooksPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type CreateBookPayload struct {
	Title           Text `json:"title" validate:"required"`
	Author          Text `json:"author" validate:"required"`
	Genre           Text `json:"genre" validate:"required"`
	PublicationDate Text `json:"publication_date" validate:"required"`
}

func (p *CreateBookPayload) Validate() error {
	return validation.Describe(MissingFieldsMessage, validation.Validator().Struct(p))
}

func (p *CreateBookPayload) Fields() Fields {
	return Fields{
		Title:           p.Title.String(),
		Author:          p.Author.String(),
		Genre:           p.Genre.String(),
		PublicationDate: p.PublicationDate.String(),
	}
}

// ------------------------------------------------------------

// OptionalFields are the text fields of an update. Any of them may be absent.
type OptionalFields struct {
	Title           Text `json:"title"`
	Author          Text `json:"author"`
	Genre           Text `json:"genre"`
	PublicationDate Text `json:"publication_date"`
}

func (o OptionalFields) Fields() Fields {
	return Fields{
		Title:           o.Title.String(),
		Author:          o.Author.String(),
		Genre:           o.Genre.String(),
		PublicationDate: o.PublicationDate.String(),
	}
}

// UpdateBookPayload is the body of a full update. An empty body is accepted
// and leaves the stored book as it is.
type UpdateBookPayload struct {
	ID string `param:"id" json:"-"`
	OptionalFields
}

func (p *UpdateBookPayload) Validate() error {
	return nil
}

// PatchBookPayload is the body of a partial update. At least one field must
// carry a value.
type PatchBookPayload struct {
	ID string `param:"id" json:"-"`
	OptionalFields
}

func (p *PatchBookPayload) Validate() error {
	if !p.Fields().Empty() {
		return nil
	}

	missing := validation.CustomValidationErrors{
		{Field: "title", Message: "at least one field must be sent"},
		{Field: "author", Message: "at least one field must be sent"},
		{Field: "genre", Message: "at least one field must be sent"},
		{Field: "publication_date", Message: "at least one field must be sent"},
	}
	return validation.Describe(NoFieldsMessage, missing)
}

// ------------------------------------------------------------

type GetBookPayload struct {
	ID string `param:"id" json:"-" validate:"required,objectid"`
}

func (p *GetBookPayload) Validate() error {
	return validation.Validator().Struct(p)
}

// ------------------------------------------------------------

type DeleteBookPayload struct {
	ID string `param:"id" json:"-" validate:"required,objectid"`
}

func (p *DeleteBookPayload) Validate() error {
	return validation.Validator().Struct(p)
}
