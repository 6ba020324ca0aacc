// Package app holds the CLI entrypoint: flag parsing, configuration,
// wiring and graceful shutdown.
package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/htol/booksdb/config"
	"github.com/htol/booksdb/logger"
	"github.com/htol/booksdb/repo"
)

// CLI parses args, runs the requested command and returns a process exit
// code.
func CLI(args []string) int {
	var app appEnv
	if err := app.fromArgs(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := app.run(); err != nil {
		logger.Error("Runtime error", "error", err)
		return 1
	}
	return 0
}

type appEnv struct {
	config *config.Config
	cmd    string
}

func (app *appEnv) fromArgs(args []string) error {
	fl := flag.NewFlagSet("booksdb", flag.ContinueOnError)

	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fl.IntVar(&cfg.Server.Port, "p", cfg.Server.Port, "Port number")
	fl.StringVar(&cfg.Database.Path, "d", cfg.Database.Path, "Path to the sqlite database")
	fl.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "Log level")

	if err := fl.Parse(args); err != nil {
		fl.Usage()
		return err
	}

	if fl.NArg() < 1 {
		return fmt.Errorf("please provide a command to run: serve | check")
	}

	app.cmd = fl.Arg(0)
	app.config = cfg
	return nil
}

func (app *appEnv) run() error {
	logger.Init(app.config.LogLevel)
	defer logger.Sync()

	storage := repo.New()
	if err := storage.Connect(app.config.Database); err != nil {
		return err
	}

	switch app.cmd {
	case "serve":
		return app.serve(storage)
	case "check":
		defer storage.Close()
		if err := storage.Ping(); err != nil {
			return err
		}
		logger.Info("Database is reachable", "driver", app.config.Database.DriverName())
		return nil
	default:
		storage.Close()
		return fmt.Errorf("unknown command: %s", app.cmd)
	}
}

func (app *appEnv) serve(storage *repo.Repo) error {
	srv := NewServer(app.config, storage)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", srv.http.Addr)
		errCh <- srv.Run()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		storage.Close()
		return err
	case s := <-sig:
		logger.Info("Graceful shutdown", "signal", s.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("Graceful shutdown finished")
	return nil
}
