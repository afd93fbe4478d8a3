package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/server"
	"taskboard/internal/storage"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}
	cfg := &app.Config
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	cmd.Flags().StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Serve /assets from this directory instead of the embedded copy")
	cmd.Flags().StringSliceVar(&cfg.CORSOrigins, "cors-origin", cfg.CORSOrigins, "Origins allowed to call /api (repeatable)")
	return cmd
}

func runServe(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := app.logger
	logger.Info("taskboard starting", slog.String("db_type", app.Config.DBType))

	db, err := openDB(ctx, app, app.Config.Seed)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		return err
	}
	defer db.Close()

	srv := server.New(server.Options{
		Projects:    storage.NewProjectRepository(db),
		Tasks:       storage.NewTaskRepository(db),
		Database:    db,
		Logger:      logger,
		StaticDir:   app.Config.StaticDir,
		CORSOrigins: app.Config.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:              app.Config.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			return err
		}
	case <-quit.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}
