package service

import (
	"context"
	"net/http"
	"time"

	"blogsite/app/config"
	"blogsite/app/logger"
	"blogsite/app/mail"
	"blogsite/app/repositories"
	"blogsite/app/routes"
	"blogsite/app/views"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// RunAppServer serves the blog until ctx is cancelled, then shuts down
// gracefully.
func RunAppServer(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}
	defer log.Sync()

	store, err := repositories.Open(cfg.Storage, log)
	if err != nil {
		return err
	}
	defer store.Close()

	renderer, err := views.New()
	if err != nil {
		return errors.Wrap(err, "failed to load templates")
	}
	mailer, err := mail.New(cfg.Mail, log)
	if err != nil {
		return err
	}

	router := routes.SetupRoutes(routes.Dependencies{
		Posts:    store.Posts(),
		Comments: store.Comments(),
		Mailer:   mailer,
		Views:    renderer,
		Health:   store,
		Logger:   log,
		Server:   cfg.Server,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  seconds(cfg.Server.ReadTimeout),
		WriteTimeout: seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  seconds(cfg.Server.IdleTimeout),
	}
	log.Info("starting blog server",
		zap.String("addr", srv.Addr),
		zap.String("mail_backend", cfg.Mail.Backend),
		zap.Bool("in_memory", cfg.Storage.InMemory),
	)
	return serve(ctx, srv, log)
}

// serve runs srv until ctx is done or the listener fails.
func serve(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info("shutting down blog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return <-errCh
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
