package book

import (
	"errors"
	"testing"

	"github.com/deppfellow/bookshelf/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookPayload_Validate(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		p := CreateBookPayload{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", PublicationDate: "1965"}
		assert.NoError(t, p.Validate())
	})

	t.Run("missing fields are named", func(t *testing.T) {
		p := CreateBookPayload{Title: "Dune", Author: "Frank Herbert"}

		err := p.Validate()
		require.Error(t, err)

		var described *validation.DescribedError
		require.True(t, errors.As(err, &described))
		assert.Equal(t, MissingFieldsMessage, described.Message)

		var fieldErrs validator.ValidationErrors
		require.True(t, errors.As(err, &fieldErrs))

		names := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			names = append(names, fe.Field())
		}
		assert.ElementsMatch(t, []string{"genre", "publication_date"}, names)
	})
}

func TestPatchBookPayload_Validate(t *testing.T) {
	assert.NoError(t, (&PatchBookPayload{OptionalFields: OptionalFields{Author: "Brian Herbert"}}).Validate())

	err := (&PatchBookPayload{ID: "5f2b6c1e9d1e8a3b4c5d6e7f"}).Validate()
	require.Error(t, err)

	var described *validation.DescribedError
	require.True(t, errors.As(err, &described))
	assert.Equal(t, NoFieldsMessage, described.Message)

	var custom validation.CustomValidationErrors
	require.True(t, errors.As(err, &custom))
	assert.Len(t, custom, 4)
}

func TestUpdateBookPayload_AcceptsNoFields(t *testing.T) {
	assert.NoError(t, (&UpdateBookPayload{}).Validate())
}

func TestIDPayloads_Validate(t *testing.T) {
	assert.NoError(t, (&GetBookPayload{ID: "5f2b6c1e9d1e8a3b4c5d6e7f"}).Validate())
	assert.Error(t, (&GetBookPayload{ID: "not-an-id"}).Validate())
	assert.NoError(t, (&DeleteBookPayload{ID: "5F2B6C1E9D1E8A3B4C5D6E7F"}).Validate())
	assert.Error(t, (&DeleteBookPayload{}).Validate())
}
