package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htol/booksdb/book"
	"github.com/htol/booksdb/config"
	"github.com/htol/booksdb/errs"
	"github.com/htol/booksdb/repo"
	"github.com/htol/booksdb/validator"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	r := repo.New()
	require.NoError(t, r.Connect(config.DatabaseConfig{
		Driver:       "sqlite3",
		Path:         filepath.Join(t.TempDir(), "service_test.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}))
	t.Cleanup(func() { _ = r.Close() })
	return New(r)
}

func validBook() *book.Book {
	return &book.Book{
		ISBN:      "123",
		Title:     "Dune",
		Published: time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC),
		Genre:     book.GenreSciFi,
		Rating:    5,
		Authors:   []book.Author{{Name: "Frank Herbert", PersonNumber: "A1"}},
	}
}

func TestAddBookValid(t *testing.T) {
	svc := newTestService(t)
	b := validBook()
	require.NoError(t, svc.AddBook(context.Background(), b))
	assert.NotZero(t, b.ID)
}

func TestAddBookRejectsRatingOutOfRange(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		b := validBook()
		b.Rating = rating
		err := svc.AddBook(ctx, b)
		assert.ErrorIs(t, err, validator.ErrInvalid, "rating %d", rating)
	}

	// Nothing slipped through.
	books, err := svc.GetAllBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestAddBookRejectsUnknownGenre(t *testing.T) {
	svc := newTestService(t)
	b := validBook()
	b.Genre = book.Genre("WESTERN")
	assert.ErrorIs(t, svc.AddBook(context.Background(), b), validator.ErrInvalid)
}

func TestAddBookRejectsEmptyFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := validBook()
	b.Title = ""
	assert.ErrorIs(t, svc.AddBook(ctx, b), validator.ErrInvalid)

	b = validBook()
	b.ISBN = ""
	assert.ErrorIs(t, svc.AddBook(ctx, b), validator.ErrInvalid)

	b = validBook()
	b.Authors[0].PersonNumber = ""
	assert.ErrorIs(t, svc.AddBook(ctx, b), validator.ErrInvalid)
}

func TestUpdateBookRequiresID(t *testing.T) {
	svc := newTestService(t)
	b := validBook()
	assert.ErrorIs(t, svc.UpdateBook(context.Background(), b), validator.ErrInvalid)
}

func TestUpdateBookNotFoundPassesThrough(t *testing.T) {
	svc := newTestService(t)
	b := validBook()
	b.ID = 77
	assert.ErrorIs(t, svc.UpdateBook(context.Background(), b), errs.ErrNotFound)
}

func TestSearchBooksByGenreParses(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddBook(ctx, validBook()))

	// Lowercase input maps onto the enumeration.
	books, err := svc.SearchBooksByGenre(ctx, "scifi")
	require.NoError(t, err)
	assert.Len(t, books, 1)

	_, err = svc.SearchBooksByGenre(ctx, "WESTERN")
	assert.ErrorIs(t, err, validator.ErrInvalid)
}

func TestSearchBooksByRatingValidates(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SearchBooksByRating(context.Background(), 0)
	assert.ErrorIs(t, err, validator.ErrInvalid)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SearchBooksByTitle(ctx, "")
	assert.ErrorIs(t, err, validator.ErrInvalid)
	_, err = svc.SearchBooksByAuthor(ctx, "")
	assert.ErrorIs(t, err, validator.ErrInvalid)
	_, err = svc.SearchBookByISBN(ctx, "")
	assert.ErrorIs(t, err, validator.ErrInvalid)
}

func TestDeleteBookValidatesID(t *testing.T) {
	svc := newTestService(t)
	err := svc.DeleteBook(context.Background(), &book.Book{})
	assert.ErrorIs(t, err, validator.ErrInvalid)
}

func TestFindAuthorByPersonNumber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddBook(ctx, validBook()))

	a, err := svc.FindAuthorByPersonNumber(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", a.Name)

	_, err = svc.FindAuthorByPersonNumber(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
