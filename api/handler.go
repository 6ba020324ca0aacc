package api

import (
	"net/http"

	"github.com/htol/booksdb/middleware"
	"github.com/htol/booksdb/service"
)

// NewRouter wires the catalog endpoints behind the middleware chain.
func NewRouter(svc *service.Service) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/health", healthHandler(svc))

	mux.Handle("GET /api/books", listBooksHandler(svc))
	mux.Handle("POST /api/books", addBookHandler(svc))
	mux.Handle("PUT /api/books/{id}", updateBookHandler(svc))
	mux.Handle("DELETE /api/books/{id}", deleteBookHandler(svc))
	mux.Handle("GET /api/books/search", searchBooksHandler(svc))

	mux.Handle("GET /api/authors/{personNumber}", findAuthorHandler(svc))
	mux.Handle("PUT /api/authors/{id}", updateAuthorHandler(svc))

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
	)
	return chain(withCORS(mux))
}
