package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devconnector.com/social-network/config"
	"devconnector.com/social-network/database"
	"devconnector.com/social-network/repository"
	"devconnector.com/social-network/routes"
	"devconnector.com/social-network/services"
)

type stores struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	tokens repository.DeviceTokenRepository
	close  func() error
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	var notifier services.Notifier = services.NopNotifier{}
	if cfg.FirebaseCredentialsPath != "" {
		fcm, err := services.NewFCMNotifier(ctx, cfg.FirebaseCredentialsPath, st.tokens, logger)
		if err != nil {
			logger.Error("Firebase init failed, push notifications disabled", "error", err)
		} else {
			notifier = fcm
		}
	} else {
		logger.Info("FIREBASE_CREDENTIALS_PATH not set, push notifications disabled")
	}

	auth := services.NewAuthService(st.users, st.tokens, services.AuthConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.JWTTTL,
	})
	posts := services.NewPostService(st.posts, st.users, notifier, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(auth, posts, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started", "port", cfg.Port, "store", cfg.Store, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("Using in-memory store, data is lost on restart")
		mem := repository.NewMemory()
		return &stores{
			posts:  mem.Posts(),
			users:  mem.Users(),
			tokens: mem.DeviceTokens(),
			close:  func() error { return nil },
		}, nil
	}

	db, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Connected to PostgreSQL")

	return &stores{
		posts:  repository.NewPostgresPosts(db),
		users:  repository.NewPostgresUsers(db),
		tokens: repository.NewPostgresDeviceTokens(db),
		close:  db.Close,
	}, nil
}
