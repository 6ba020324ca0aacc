package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/htol/booksdb/api"
	"github.com/htol/booksdb/config"
	"github.com/htol/booksdb/repo"
	"github.com/htol/booksdb/service"
)

// Server bundles the storage, the service layer and the HTTP listener.
type Server struct {
	storage *repo.Repo
	service *service.Service
	http    *http.Server
}

func NewServer(cfg *config.Config, storage *repo.Repo) *Server {
	svc := service.New(storage)
	return &Server{
		storage: storage,
		service: svc,
		http: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      api.NewRouter(svc),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		},
	}
}

// Run serves until the listener fails or is shut down.
func (s *Server) Run() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener and closes the storage.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}
	return s.storage.Close()
}
