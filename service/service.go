// Package service provides the business-logic layer between the API and
// the repository: input validation, genre parsing and error context.
package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/htol/booksdb/book"
	"github.com/htol/booksdb/repo"
	"github.com/htol/booksdb/validator"
)

// Service wraps a Repository. It performs no retries and holds no state
// of its own; every failure from below is wrapped and returned.
type Service struct {
	repo repo.Repository
}

func New(r repo.Repository) *Service {
	return &Service{repo: r}
}

// Ping reports whether the underlying store is reachable.
func (s *Service) Ping() error {
	return s.repo.Ping()
}

// GetAllBooks lists the whole catalog.
func (s *Service) GetAllBooks(ctx context.Context) ([]book.Book, error) {
	books, err := s.repo.GetAllBooks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get all books")
	}
	return books, nil
}

// AddBook validates b and persists it. On success b carries its newly
// allocated identifier.
func (s *Service) AddBook(ctx context.Context, b *book.Book) error {
	if err := validator.ValidateBook(b); err != nil {
		return err
	}
	if err := s.repo.AddBook(ctx, b); err != nil {
		return errors.Wrap(err, "add book")
	}
	return nil
}

// UpdateBook validates b and rewrites it, replacing its author set.
func (s *Service) UpdateBook(ctx context.Context, b *book.Book) error {
	if err := validator.ValidateID(b.ID); err != nil {
		return err
	}
	if err := validator.ValidateBook(b); err != nil {
		return err
	}
	if err := s.repo.UpdateBook(ctx, b); err != nil {
		return errors.Wrapf(err, "update book %d", b.ID)
	}
	return nil
}

// DeleteBook removes the book and its associations. Its authors stay.
func (s *Service) DeleteBook(ctx context.Context, b *book.Book) error {
	if err := validator.ValidateID(b.ID); err != nil {
		return err
	}
	if err := s.repo.DeleteBook(ctx, b); err != nil {
		return errors.Wrapf(err, "delete book %d", b.ID)
	}
	return nil
}

// FindAuthorByPersonNumber looks an author up by the dedup key.
func (s *Service) FindAuthorByPersonNumber(ctx context.Context, personNumber string) (*book.Author, error) {
	if err := validator.ValidateQuery(personNumber); err != nil {
		return nil, err
	}
	a, err := s.repo.FindAuthorByPersonNumber(ctx, personNumber)
	if err != nil {
		return nil, errors.Wrapf(err, "find author %q", personNumber)
	}
	return a, nil
}

// UpdateAuthor rewrites an existing author's fields.
func (s *Service) UpdateAuthor(ctx context.Context, a *book.Author) error {
	if err := validator.ValidateID(a.ID); err != nil {
		return err
	}
	if err := validator.ValidateAuthor(a); err != nil {
		return err
	}
	if err := s.repo.UpdateAuthor(ctx, a); err != nil {
		return errors.Wrapf(err, "update author %d", a.ID)
	}
	return nil
}

// SearchBooksByTitle matches a title substring, case-insensitively.
func (s *Service) SearchBooksByTitle(ctx context.Context, title string) ([]book.Book, error) {
	if err := validator.ValidateQuery(title); err != nil {
		return nil, err
	}
	books, err := s.repo.SearchByTitle(ctx, title)
	if err != nil {
		return nil, errors.Wrapf(err, "search by title %q", title)
	}
	return books, nil
}

// SearchBooksByAuthor matches an author-name substring, case-insensitively.
func (s *Service) SearchBooksByAuthor(ctx context.Context, name string) ([]book.Book, error) {
	if err := validator.ValidateQuery(name); err != nil {
		return nil, err
	}
	books, err := s.repo.SearchByAuthorName(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "search by author %q", name)
	}
	return books, nil
}

// SearchBookByISBN matches an exact ISBN.
func (s *Service) SearchBookByISBN(ctx context.Context, isbn string) ([]book.Book, error) {
	if err := validator.ValidateQuery(isbn); err != nil {
		return nil, err
	}
	books, err := s.repo.SearchByISBN(ctx, isbn)
	if err != nil {
		return nil, errors.Wrapf(err, "search by isbn %q", isbn)
	}
	return books, nil
}

// SearchBooksByGenre matches an exact genre from the closed enumeration.
func (s *Service) SearchBooksByGenre(ctx context.Context, genre string) ([]book.Book, error) {
	g, err := book.ParseGenre(genre)
	if err != nil {
		return nil, errors.Wrap(validator.ErrInvalid, err.Error())
	}
	books, err := s.repo.SearchByGenre(ctx, g)
	if err != nil {
		return nil, errors.Wrapf(err, "search by genre %q", g)
	}
	return books, nil
}

// SearchBooksByRating matches an exact rating in the 1-5 range.
func (s *Service) SearchBooksByRating(ctx context.Context, rating int) ([]book.Book, error) {
	if err := validator.ValidateRating(rating); err != nil {
		return nil, err
	}
	books, err := s.repo.SearchByRating(ctx, rating)
	if err != nil {
		return nil, errors.Wrapf(err, "search by rating %d", rating)
	}
	return books, nil
}
