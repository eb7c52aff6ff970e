package storeerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/bookshelf/internal/errs"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the category of a store error.
func ErrCode(err error) Code {
	switch {
	case err == nil:
		return Other
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case hasServerCode(err, documentValidationFailure):
		return DocumentInvalid
	default:
		return Other
	}
}

// hasServerCode reports whether any server error in the chain carries code.
func hasServerCode(err error, code int) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorCode(code)
	}
	return false
}

// generateErrorCode creates consistent application error codes from store errors.
//
// Output format:
//
//	<ENTITY>_<ACTION>
//
// Example:
//
//	books + NotFound => BOOK_NOT_FOUND
func generateErrorCode(collection string, code Code) string {
	if collection == "" {
		collection = "RECORD"
	}

	domain := strings.ToUpper(singular(collection))

	action := "ERROR"
	switch code {
	case NotFound:
		action = "NOT_FOUND"
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	case DocumentInvalid:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client-facing message for a store failure.
func formatUserFriendlyMessage(collection string, code Code) string {
	entityName := getEntityName(collection)

	switch code {
	case NotFound:
		return fmt.Sprintf("%s not found", entityName)
	case DuplicateKey:
		return fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(entityName))
	case DocumentInvalid:
		return fmt.Sprintf("The %s does not meet the collection's required conditions", strings.ToLower(entityName))
	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName turns a collection name into a human entity name.
//
//	"books" -> "Book", "reading_lists" -> "Reading List", "" -> "Record"
func getEntityName(collection string) string {
	if collection == "" {
		return "Record"
	}
	return humanizeText(singular(collection))
}

// singular drops a trailing "s". Good enough for the collections we own.
func singular(name string) string {
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		return name[:len(name)-1]
	}
	return name
}

// humanizeText converts snake_case into Title Case.
//
//	"publication_date" -> "Publication Date"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a low-level store error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - ErrNoDocuments: 404 <ENTITY>_NOT_FOUND
//   - duplicate key: 400 <ENTITY>_ALREADY_EXISTS
//   - document validation failure: 400 <ENTITY>_INVALID
//   - anything else: 500 carrying the underlying message
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	collection := ""
	var opErr *OpError
	if errors.As(err, &opErr) {
		collection = opErr.Collection
	}

	code := ErrCode(err)
	errorCode := generateErrorCode(collection, code)
	userMessage := formatUserFriendlyMessage(collection, code)

	switch code {
	case NotFound:
		return errs.NewNotFoundError(userMessage, true, &errorCode).WithCause(err)
	case DuplicateKey, DocumentInvalid:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil).WithCause(err)
	default:
		return errs.NewInternalServerErrorFrom(err)
	}
}
