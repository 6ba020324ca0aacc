package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/htol/booksdb/book"
	"github.com/htol/booksdb/errs"
)

// hydrateConcurrency bounds the parallel author lookups during result
// hydration. Reads go through the pool, so fan-out is safe.
const hydrateConcurrency = 4

// GetAllBooks returns every book in the catalog, hydrated with its
// current author list.
func (r *Repo) GetAllBooks(ctx context.Context) ([]book.Book, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}

	books := make([]book.Book, 0)
	q := `SELECT book_id, isbn, title, published, synopsis, genre, rating FROM books ORDER BY book_id`
	if err := db.SelectContext(ctx, &books, q); err != nil {
		return nil, persistence("list books", err)
	}
	if err := r.hydrateAuthors(ctx, db, books); err != nil {
		return nil, err
	}
	return books, nil
}

// AddBook persists b, its authors and their associations in a single
// transaction: allocate an identifier, write the book row, resolve or
// create each author, then write the association set. Any statement
// failure rolls the whole operation back and leaves the book absent from
// the store; b.ID is assigned only after the commit.
func (r *Repo) AddBook(ctx context.Context, b *book.Book) error {
	var id int64
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = nextAvailableID(ctx, tx, booksTable, "book_id")
		if err != nil {
			return err
		}

		q := tx.Rebind(`
			INSERT INTO books (book_id, isbn, title, published, synopsis, genre, rating)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if _, err := tx.ExecContext(ctx, q,
			id, b.ISBN, b.Title, b.Published, b.Synopsis, string(b.Genre), b.Rating); err != nil {
			return persistence("insert book", err)
		}

		authorIDs, err := r.resolveAuthors(ctx, tx, b.Authors)
		if err != nil {
			return err
		}
		return replaceBookAuthors(ctx, tx, id, authorIDs)
	})
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// UpdateBook rewrites the book row, resolves and refreshes every author
// in the book's list, then replaces the association set to match the list
// exactly. One transaction; ErrNotFound if the book does not exist.
func (r *Repo) UpdateBook(ctx context.Context, b *book.Book) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		q := tx.Rebind(`
			UPDATE books SET isbn = ?, title = ?, published = ?, synopsis = ?, genre = ?, rating = ?
			WHERE book_id = ?`)
		res, err := tx.ExecContext(ctx, q,
			b.ISBN, b.Title, b.Published, b.Synopsis, string(b.Genre), b.Rating, b.ID)
		if err != nil {
			return persistence("update book", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return persistence("update book", err)
		}
		if n == 0 {
			return fmt.Errorf("update book %d: %w", b.ID, errs.ErrNotFound)
		}

		authorIDs, err := r.resolveAuthors(ctx, tx, b.Authors)
		if err != nil {
			return err
		}
		return replaceBookAuthors(ctx, tx, b.ID, authorIDs)
	})
}

// DeleteBook removes the book's associations and then the book row, in
// one transaction. Authors are shared entities and are never
// cascade-deleted.
func (r *Repo) DeleteBook(ctx context.Context, b *book.Book) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		q := tx.Rebind(`DELETE FROM book_authors WHERE book_id = ?`)
		if _, err := tx.ExecContext(ctx, q, b.ID); err != nil {
			return persistence("delete book authors", err)
		}
		q = tx.Rebind(`DELETE FROM books WHERE book_id = ?`)
		if _, err := tx.ExecContext(ctx, q, b.ID); err != nil {
			return persistence("delete book", err)
		}
		return nil
	})
}

// replaceBookAuthors rewrites the association set for bookID to exactly
// authorIDs: delete-all then insert-all, inside the caller's transaction,
// so a partial failure never leaves the book linked to a stale set.
// Duplicate identifiers are suppressed.
func replaceBookAuthors(ctx context.Context, tx *sqlx.Tx, bookID int64, authorIDs []int64) error {
	q := tx.Rebind(`DELETE FROM book_authors WHERE book_id = ?`)
	if _, err := tx.ExecContext(ctx, q, bookID); err != nil {
		return persistence("clear book authors", err)
	}

	q = tx.Rebind(`INSERT INTO book_authors (book_id, author_id) VALUES (?, ?)`)
	seen := make(map[int64]struct{}, len(authorIDs))
	for _, authorID := range authorIDs {
		if _, ok := seen[authorID]; ok {
			continue
		}
		seen[authorID] = struct{}{}
		if _, err := tx.ExecContext(ctx, q, bookID, authorID); err != nil {
			return persistence("link book author", err)
		}
	}
	return nil
}

// hydrateAuthors attaches the current author list to every book in the
// slice. Lookups fan out through a bounded errgroup so large result sets
// do not pay the per-book round trips serially.
func (r *Repo) hydrateAuthors(ctx context.Context, db *sqlx.DB, books []book.Book) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateConcurrency)
	for i := range books {
		g.Go(func() error {
			authors, err := r.authorsForBook(ctx, db, books[i].ID)
			if err != nil {
				return err
			}
			books[i].Authors = authors
			return nil
		})
	}
	return g.Wait()
}
