// Package book defines the catalog domain model: books, authors and the
// fixed genre enumeration.
package book

import (
	"fmt"
	"strings"
	"time"
)

// Genre is one of the fixed catalog genres, stored as uppercase text.
type Genre string

const (
	GenreFantasy Genre = "FANTASY"
	GenreSciFi   Genre = "SCIFI"
	GenreCrime   Genre = "CRIME"
	GenreRomance Genre = "ROMANCE"
	GenreHorror  Genre = "HORROR"
	GenreDrama   Genre = "DRAMA"
	GenreHistory Genre = "HISTORY"
	GenreOther   Genre = "OTHER"
)

// Genres returns every valid genre value, in display order.
func Genres() []Genre {
	return []Genre{
		GenreFantasy,
		GenreSciFi,
		GenreCrime,
		GenreRomance,
		GenreHorror,
		GenreDrama,
		GenreHistory,
		GenreOther,
	}
}

// ParseGenre maps a string onto the genre enumeration, ignoring case.
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("unknown genre %q", s)
	}
	return g, nil
}

// Valid reports whether g is a member of the enumeration.
func (g Genre) Valid() bool {
	switch g {
	case GenreFantasy, GenreSciFi, GenreCrime, GenreRomance,
		GenreHorror, GenreDrama, GenreHistory, GenreOther:
		return true
	}
	return false
}

// Author is a shared, independent entity. PersonNumber is the natural
// deduplication key: two authors with the same person number are the same
// person and must resolve to one row in the store.
type Author struct {
	ID           int64  `db:"author_id" json:"author_id,omitempty"`
	Name         string `db:"name" json:"name"`
	PersonNumber string `db:"person_number" json:"person_number"`
}

// Book is a catalog entry. ID is zero until the book has been persisted;
// the store allocates a permanent identifier on insert.
type Book struct {
	ID        int64     `db:"book_id" json:"book_id,omitempty"`
	ISBN      string    `db:"isbn" json:"isbn"`
	Title     string    `db:"title" json:"title"`
	Published time.Time `db:"published" json:"published"`
	Synopsis  string    `db:"synopsis" json:"synopsis,omitempty"`
	Genre     Genre     `db:"genre" json:"genre"`
	Rating    int       `db:"rating" json:"rating"`
	Authors   []Author  `json:"authors"`
}

// AddAuthor appends a to the book's author list. An author already present
// under the same identifier is suppressed; unsaved authors (ID zero) are
// always appended because their identity is not known yet.
func (b *Book) AddAuthor(a Author) {
	if a.ID != 0 {
		for _, existing := range b.Authors {
			if existing.ID == a.ID {
				return
			}
		}
	}
	b.Authors = append(b.Authors, a)
}

// RemoveAuthor drops every entry with the given identifier from the
// book's author list.
func (b *Book) RemoveAuthor(authorID int64) {
	kept := b.Authors[:0]
	for _, a := range b.Authors {
		if a.ID != authorID {
			kept = append(kept, a)
		}
	}
	b.Authors = kept
}

// AuthorNames returns the book's author names joined for display.
func (b *Book) AuthorNames() string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func (b *Book) String() string {
	return fmt.Sprintf("%s, %s, %s, Authors: %s",
		b.Title, b.ISBN, b.Published.Format(time.DateOnly), b.AuthorNames())
}
