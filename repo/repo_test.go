package repo

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
)

func testDBConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver:       "sqlite3",
		Path:         filepath.Join(t.TempDir(), "books_test.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}
}

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	r := New()
	require.NoError(t, r.Connect(testDBConfig(t)))
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func mustAddBook(t *testing.T, r *Repo, b *book.Book) *book.Book {
	t.Helper()
	require.NoError(t, r.AddBook(context.Background(), b))
	require.NotZero(t, b.ID)
	return b
}

// countRows is a test-only peek at a table, bypassing the public API.
func countRows(t *testing.T, r *Repo, table string) int {
	t.Helper()
	var n int
	require.NoError(t, r.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestCloseWhenNotConnected(t *testing.T) {
	r := New()
	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestPingWhenNotConnected(t *testing.T) {
	r := New()
	assert.ErrorIs(t, r.Ping(), errs.ErrNotConnected)
}

func TestOperationsRequireConnection(t *testing.T) {
	r := New()
	ctx := context.Background()

	_, err := r.GetAllBooks(ctx)
	assert.ErrorIs(t, err, errs.ErrNotConnected)

	err = r.AddBook(ctx, &book.Book{Title: "x", ISBN: "1", Genre: book.GenreOther})
	assert.ErrorIs(t, err, errs.ErrNotConnected)

	_, err = r.SearchByTitle(ctx, "x")
	assert.ErrorIs(t, err, errs.ErrNotConnected)

	_, err = r.FindAuthorByPersonNumber(ctx, "A1")
	assert.ErrorIs(t, err, errs.ErrNotConnected)
}

func TestConnectAndPing(t *testing.T) {
	r := newTestRepo(t)
	assert.NoError(t, r.Ping())
}

func TestReconnectReplacesConnection(t *testing.T) {
	r := New()
	require.NoError(t, r.Connect(testDBConfig(t)))
	mustAddBook(t, r, &book.Book{
		ISBN:      "111",
		Title:     "First Store",
		Published: date(2001, time.January, 1),
		Genre:     book.GenreOther,
		Rating:    3,
	})

	// Second Connect points at a fresh database; the old pool must be
	// gone and the repo must serve the new store.
	require.NoError(t, r.Connect(testDBConfig(t)))
	t.Cleanup(func() { _ = r.Close() })

	books, err := r.GetAllBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NoError(t, r.Ping())
}

func TestOperationsAfterClose(t *testing.T) {
	r := New()
	require.NoError(t, r.Connect(testDBConfig(t)))
	require.NoError(t, r.Close())

	_, err := r.GetAllBooks(context.Background())
	assert.ErrorIs(t, err, errs.ErrNotConnected)
}
