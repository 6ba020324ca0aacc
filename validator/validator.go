// Package validator provides input validation for catalog entities.
package validator

import (
	"errors"
	"fmt"

	"github.com/htol/booksdb/book"
)

// ErrInvalid is the base of every validation error, so callers can map
// the whole family with a single errors.Is check.
var ErrInvalid = errors.New("invalid input")

var (
	ErrEmptyTitle        = fmt.Errorf("%w: title cannot be empty", ErrInvalid)
	ErrEmptyISBN         = fmt.Errorf("%w: ISBN cannot be empty", ErrInvalid)
	ErrEmptyQuery        = fmt.Errorf("%w: search query cannot be empty", ErrInvalid)
	ErrEmptyPersonNumber = fmt.Errorf("%w: person number cannot be empty", ErrInvalid)
	ErrEmptyAuthorName   = fmt.Errorf("%w: author name cannot be empty", ErrInvalid)
	ErrRatingRange       = fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	ErrInvalidID         = fmt.Errorf("%w: ID must be positive", ErrInvalid)
)

// ValidateBook checks a book before it is handed to the store: title,
// ISBN, genre membership, rating bounds and every attached author.
func ValidateBook(b *book.Book) error {
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if b.ISBN == "" {
		return ErrEmptyISBN
	}
	if !b.Genre.Valid() {
		return fmt.Errorf("%w: unknown genre %q", ErrInvalid, b.Genre)
	}
	if err := ValidateRating(b.Rating); err != nil {
		return err
	}
	for i := range b.Authors {
		if err := ValidateAuthor(&b.Authors[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAuthor checks that an author carries a name and the person
// number used as its deduplication key.
func ValidateAuthor(a *book.Author) error {
	if a.Name == "" {
		return ErrEmptyAuthorName
	}
	if a.PersonNumber == "" {
		return ErrEmptyPersonNumber
	}
	return nil
}

// ValidateRating checks the 1-5 rating bounds.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}
	return nil
}

// ValidateID checks that an entity identifier is positive.
func ValidateID(id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}

// ValidateQuery checks that a search string is not empty.
func ValidateQuery(q string) error {
	if q == "" {
		return ErrEmptyQuery
	}
	return nil
}
