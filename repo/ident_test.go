package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htol/booksdb/book"
)

// nextIDHelper wraps the allocator in its own transaction for testing.
func nextIDHelper(t *testing.T, r *Repo, table, column string) int64 {
	t.Helper()
	tx, err := r.db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	id, err := nextAvailableID(context.Background(), tx, table, column)
	require.NoError(t, err)
	return id
}

func numberedBook(n int) *book.Book {
	return &book.Book{
		ISBN:      "isbn-" + string(rune('0'+n)),
		Title:     "Book " + string(rune('0'+n)),
		Published: date(2000+n, time.January, 1),
		Genre:     book.GenreOther,
		Rating:    3,
	}
}

func TestAllocatorStartsAtOne(t *testing.T) {
	r := newTestRepo(t)
	assert.EqualValues(t, 1, nextIDHelper(t, r, booksTable, "book_id"))
	assert.EqualValues(t, 1, nextIDHelper(t, r, authorsTable, "author_id"))
}

func TestAllocatorSequential(t *testing.T) {
	r := newTestRepo(t)
	for n := 1; n <= 4; n++ {
		b := mustAddBook(t, r, numberedBook(n))
		assert.EqualValues(t, n, b.ID)
	}
}

func TestAllocatorReusesLowestFreedID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	books := make([]*book.Book, 0, 4)
	for n := 1; n <= 4; n++ {
		books = append(books, mustAddBook(t, r, numberedBook(n)))
	}

	// Free identifier 3 out of {1,2,3,4}: the next insert must get 3,
	// not 5.
	require.NoError(t, r.DeleteBook(ctx, books[2]))

	next := mustAddBook(t, r, numberedBook(5))
	assert.EqualValues(t, 3, next.ID)

	// And the following insert continues past the occupied range.
	after := mustAddBook(t, r, numberedBook(6))
	assert.EqualValues(t, 5, after.ID)
}

func TestAllocatorFillsGapAtOne(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := mustAddBook(t, r, numberedBook(1))
	mustAddBook(t, r, numberedBook(2))
	require.NoError(t, r.DeleteBook(ctx, first))

	assert.EqualValues(t, 1, nextIDHelper(t, r, booksTable, "book_id"))
}
