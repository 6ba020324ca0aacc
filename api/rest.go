// Package api exposes the catalog's request/response contract over a
// narrow JSON API. It renders nothing and holds no state; presentation
// is the client's concern.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/htol/booksdb/book"
	"github.com/htol/booksdb/service"
)

func listBooksHandler(svc *service.Service) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		books, err := svc.GetAllBooks(r.Context())
		if err != nil {
			respondWithError(w, "Failed to list books", err)
			return
		}
		respondWithJSON(w, http.StatusOK, books)
	}
	return http.HandlerFunc(hf)
}

func addBookHandler(svc *service.Service) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		var b book.Book
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			respondWithValidationError(w, "malformed book payload")
			return
		}
		b.ID = 0 // the store allocates identifiers
		if err := svc.AddBook(r.Context(), &b); err != nil {
			respondWithError(w, "Failed to add book", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, b)
	}
	return http.HandlerFunc(hf)
}

func updateBookHandler(svc *service.Service) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			respondWithValidationError(w, "invalid book ID")
			return
		}
		var b book.Book
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			respondWithValidationError(w, "malformed book payload")
			return
		}
		b.ID = id
		if err := svc.UpdateBook(r.Context(), &b); err != nil {
			respondWithError(w, "Failed to update book", err)
			return
		}
		respondWithJSON(w, http.StatusOK, b)
	}
	return http.HandlerFunc(hf)
}

func deleteBookHandler(svc *service.Service) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			respondWithValidationError(w, "invalid book ID")
			return
		}
		if err := svc.DeleteBook(r.Context(), &book.Book{ID: id}); err != nil {
			respondWithError(w, "Failed to delete book", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
	return http.HandlerFunc(hf)
}

// searchBooksHandler dispatches on the "by" query parameter: title,
// author, isbn, genre or rating.
func searchBooksHandler(svc *service.Service) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		criterion := r.URL.Query().Get("by")
		query := r.URL.Query().Get("q")

		ctx := r.Context()
		var (
			books []book.Book
			err   error
		)
		switch criterion {
		case "title":
			books, err = svc.SearchBooksByTitle(ctx, query)
		case "author":
			books, err = svc.SearchBooksByAuthor(ctx, query)
		case "isbn":
			books, err = svc.SearchBookByISBN(ctx, query)
		case "genre":
			books, err = svc.SearchBooksByGenre(ctx, query)
		case "rating":
			rating, convErr := strconv.Atoi(query)
			if convErr != nil {
				respondWithValidationError(w, "rating must be an integer")
				return
			}
			books, err = svc.SearchBooksByRating(ctx, rating)
		default:
			respondWithValidationError(w, "unknown search criterion: use title, author, isbn, genre or rating")
			return
		}
		if err != nil {
			respondWithError(w, "Search failed", err)
			return
		}
		respondWithJSON(w, http.StatusOK, books)
	}
	return http.HandlerFunc(hf)
}

func findAuthorHandler(svc *service.Service) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.FindAuthorByPersonNumber(r.Context(), r.PathValue("personNumber"))
		if err != nil {
			respondWithError(w, "Failed to find author", err)
			return
		}
		respondWithJSON(w, http.StatusOK, a)
	}
	return http.HandlerFunc(hf)
}

func updateAuthorHandler(svc *service.Service) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			respondWithValidationError(w, "invalid author ID")
			return
		}
		var a book.Author
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			respondWithValidationError(w, "malformed author payload")
			return
		}
		a.ID = id
		if err := svc.UpdateAuthor(r.Context(), &a); err != nil {
			respondWithError(w, "Failed to update author", err)
			return
		}
		respondWithJSON(w, http.StatusOK, a)
	}
	return http.HandlerFunc(hf)
}

func healthHandler(svc *service.Service) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ping(); err != nil {
			respondWithError(w, "Health check failed", err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
	return http.HandlerFunc(hf)
}
