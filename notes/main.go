package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notes/notes/config"
	"notes/notes/controllers"
	"notes/notes/routes"
	"notes/notes/sources/psql"
	"notes/notes/sources/psql/dao"
	"notes/notes/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		panic(err)
	}
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
	defer db.Close()

	notesCtrl := controllers.NewNotesController(dao.NewNoteDAO(db.DB))
	healthCtrl := controllers.NewHealthController()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           routes.NewRouter(cfg, notesCtrl, healthCtrl),
		ReadHeaderTimeout: 10 * time.Second,
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(srv, sigCh); err != nil {
		logging.ErrorLogger.Error("server listen error", zap.Error(err))
		db.Close()
		logging.Sync()
		os.Exit(1)
	}
	logging.AppLogger.Info("server shutdown complete")
}

// serve runs srv until a signal arrives on stop, then shuts it down
// gracefully. A listener failure is returned without waiting for a signal.
func serve(srv *http.Server, stop <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logging.AppLogger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	return nil
}
