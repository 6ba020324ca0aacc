package repo

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/htol/booksdb/book"
)

var bookColumns = []string{"book_id", "isbn", "title", "published", "synopsis", "genre", "rating"}

// qb builds with ? placeholders; searchBooks rebinds for the active
// driver before executing.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// SearchByTitle returns books whose title contains the given substring,
// case-insensitively.
func (r *Repo) SearchByTitle(ctx context.Context, title string) ([]book.Book, error) {
	return r.searchBooks(ctx, qb.
		Select(bookColumns...).
		From(booksTable).
		Where(sq.Like{"LOWER(title)": contains(title)}).
		OrderBy("book_id"))
}

// SearchByAuthorName returns books with at least one author whose name
// contains the given substring, case-insensitively. A book matching
// through several authors appears once.
func (r *Repo) SearchByAuthorName(ctx context.Context, name string) ([]book.Book, error) {
	cols := make([]string, len(bookColumns))
	for i, c := range bookColumns {
		cols[i] = "b." + c
	}
	return r.searchBooks(ctx, qb.
		Select(cols...).
		Distinct().
		From(booksTable+" b").
		Join(bookAuthorsTable+" ba ON b.book_id = ba.book_id").
		Join(authorsTable+" a ON ba.author_id = a.author_id").
		Where(sq.Like{"LOWER(a.name)": contains(name)}).
		OrderBy("b.book_id"))
}

// SearchByISBN returns books with exactly the given ISBN.
func (r *Repo) SearchByISBN(ctx context.Context, isbn string) ([]book.Book, error) {
	return r.searchBooks(ctx, qb.
		Select(bookColumns...).
		From(booksTable).
		Where(sq.Eq{"isbn": isbn}).
		OrderBy("book_id"))
}

// SearchByGenre returns books with exactly the given genre value.
func (r *Repo) SearchByGenre(ctx context.Context, genre book.Genre) ([]book.Book, error) {
	return r.searchBooks(ctx, qb.
		Select(bookColumns...).
		From(booksTable).
		Where(sq.Eq{"genre": string(genre)}).
		OrderBy("book_id"))
}

// SearchByRating returns books with exactly the given rating.
func (r *Repo) SearchByRating(ctx context.Context, rating int) ([]book.Book, error) {
	return r.searchBooks(ctx, qb.
		Select(bookColumns...).
		From(booksTable).
		Where(sq.Eq{"rating": rating}).
		OrderBy("book_id"))
}

// searchBooks executes one criterion query and hydrates the result set.
// Hydration reads the association table at query time, so the author
// lists always reflect the current state, not a cached snapshot.
func (r *Repo) searchBooks(ctx context.Context, sel sq.SelectBuilder) ([]book.Book, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, persistence("build search query", err)
	}

	books := make([]book.Book, 0)
	if err := db.SelectContext(ctx, &books, db.Rebind(query), args...); err != nil {
		return nil, persistence("search books", err)
	}
	if err := r.hydrateAuthors(ctx, db, books); err != nil {
		return nil, err
	}
	return books, nil
}

func contains(substring string) string {
	return "%" + strings.ToLower(substring) + "%"
}
