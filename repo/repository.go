package repo

import (
	"context"

	"github.com/htol/booksdb/book"
	"github.com/htol/booksdb/config"
)

// Repository defines the data access contract exposed to the layers
// above. Every method returns either a result or an error from the errs
// taxonomy; multi-statement writes are atomic per call.
type Repository interface {
	// Connect opens the database described by cfg, verifies it is
	// reachable and prepares the schema. Connecting while already
	// connected closes the previous connection first.
	Connect(cfg config.DatabaseConfig) error

	// Close releases the connection. Closing when not connected is a
	// no-op that succeeds.
	Close() error

	// Ping reports whether the store is reachable.
	Ping() error

	// Books
	GetAllBooks(ctx context.Context) ([]book.Book, error)
	AddBook(ctx context.Context, b *book.Book) error
	UpdateBook(ctx context.Context, b *book.Book) error
	DeleteBook(ctx context.Context, b *book.Book) error

	// Authors
	FindAuthorByPersonNumber(ctx context.Context, personNumber string) (*book.Author, error)
	UpdateAuthor(ctx context.Context, a *book.Author) error

	// Search. Substring criteria match case-insensitively; the rest are
	// exact. Results are always hydrated with their current author
	// lists, and an empty result is an empty, non-nil slice.
	SearchByTitle(ctx context.Context, title string) ([]book.Book, error)
	SearchByAuthorName(ctx context.Context, name string) ([]book.Book, error)
	SearchByISBN(ctx context.Context, isbn string) ([]book.Book, error)
	SearchByGenre(ctx context.Context, genre book.Genre) ([]book.Book, error)
	SearchByRating(ctx context.Context, rating int) ([]book.Book, error)
}
