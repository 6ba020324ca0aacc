package repo

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// The DDL is restricted to the dialect shared by sqlite3 and postgres.
// Identifiers are allocated by the store, so the primary keys carry no
// autoincrement. UNIQUE(person_number) backs author deduplication; the
// CHECK keeps the dedup key from ever being empty.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		book_id   INTEGER PRIMARY KEY,
		isbn      TEXT NOT NULL,
		title     TEXT NOT NULL,
		published DATE,
		synopsis  TEXT NOT NULL DEFAULT '',
		genre     TEXT NOT NULL,
		rating    INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS i_books_title ON books (title)`,
	`CREATE INDEX IF NOT EXISTS i_books_isbn ON books (isbn)`,
	`CREATE INDEX IF NOT EXISTS i_books_genre ON books (genre)`,

	`CREATE TABLE IF NOT EXISTS authors (
		author_id     INTEGER PRIMARY KEY,
		name          TEXT NOT NULL,
		person_number TEXT NOT NULL UNIQUE CHECK (person_number <> '')
	)`,
	`CREATE INDEX IF NOT EXISTS i_authors_name ON authors (name)`,

	`CREATE TABLE IF NOT EXISTS book_authors (
		book_id   INTEGER NOT NULL,
		author_id INTEGER NOT NULL,
		PRIMARY KEY (book_id, author_id),
		FOREIGN KEY (book_id) REFERENCES books (book_id),
		FOREIGN KEY (author_id) REFERENCES authors (author_id)
	)`,
	`CREATE INDEX IF NOT EXISTS i_book_authors_book_id ON book_authors (book_id)`,
	`CREATE INDEX IF NOT EXISTS i_book_authors_author_id ON book_authors (author_id)`,
}

// createSchema is idempotent and runs on every Connect. Statements are
// executed one at a time because pgx rejects multi-statement Exec.
func createSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
