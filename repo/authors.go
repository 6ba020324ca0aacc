package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/htol/booksdb/book"
	"github.com/htol/booksdb/errs"
)

// FindAuthorByPersonNumber looks an author up by the natural
// deduplication key. Returns ErrNotFound when no row matches.
func (r *Repo) FindAuthorByPersonNumber(ctx context.Context, personNumber string) (*book.Author, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}

	q := db.Rebind(`SELECT author_id, name, person_number FROM authors WHERE person_number = ?`)
	var a book.Author
	if err := db.GetContext(ctx, &a, q, personNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("author %q: %w", personNumber, errs.ErrNotFound)
		}
		return nil, persistence("find author by person number", err)
	}
	return &a, nil
}

// UpdateAuthor rewrites name and person number for an existing author
// identifier. Returns ErrNotFound when no row was affected.
func (r *Repo) UpdateAuthor(ctx context.Context, a *book.Author) error {
	db, err := r.handle()
	if err != nil {
		return err
	}

	q := db.Rebind(`UPDATE authors SET name = ?, person_number = ? WHERE author_id = ?`)
	res, err := db.ExecContext(ctx, q, a.Name, a.PersonNumber, a.ID)
	if err != nil {
		return persistence("update author", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistence("update author", err)
	}
	if n == 0 {
		return fmt.Errorf("update author %d: %w", a.ID, errs.ErrNotFound)
	}
	return nil
}

// resolveAuthor returns the permanent identifier for a, creating the row
// if the person number is unknown and refreshing the stored name if it is
// not. The UNIQUE constraint on person_number turns this into an upsert,
// so concurrent inserts of the same person cannot race into duplicates.
// The identifier allocated up front is simply discarded on conflict. The
// author's ID field is updated in place.
func (r *Repo) resolveAuthor(ctx context.Context, tx *sqlx.Tx, a *book.Author) (int64, error) {
	id, err := nextAvailableID(ctx, tx, authorsTable, "author_id")
	if err != nil {
		return 0, err
	}

	q := tx.Rebind(`
		INSERT INTO authors (author_id, name, person_number) VALUES (?, ?, ?)
		ON CONFLICT (person_number) DO UPDATE SET name = excluded.name
		RETURNING author_id`)
	if err := tx.QueryRowxContext(ctx, q, id, a.Name, a.PersonNumber).Scan(&a.ID); err != nil {
		return 0, persistence("resolve author", err)
	}
	return a.ID, nil
}

// resolveAuthors resolves every author in order, preserving the list's
// positions for the association write that follows.
func (r *Repo) resolveAuthors(ctx context.Context, tx *sqlx.Tx, authors []book.Author) ([]int64, error) {
	ids := make([]int64, 0, len(authors))
	for i := range authors {
		id, err := r.resolveAuthor(ctx, tx, &authors[i])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// authorsForBook loads the current author list for one book through the
// association table, ordered by author identifier.
func (r *Repo) authorsForBook(ctx context.Context, db *sqlx.DB, bookID int64) ([]book.Author, error) {
	q := db.Rebind(`
		SELECT a.author_id, a.name, a.person_number
		FROM authors a
		JOIN book_authors ba ON a.author_id = ba.author_id
		WHERE ba.book_id = ?
		ORDER BY a.author_id`)

	authors := make([]book.Author, 0)
	if err := db.SelectContext(ctx, &authors, q, bookID); err != nil {
		return nil, persistence("load authors for book", err)
	}
	return authors, nil
}
