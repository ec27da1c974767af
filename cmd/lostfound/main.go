package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campuslf/lostfound/internal/api"
	"github.com/campuslf/lostfound/internal/config"
	"github.com/campuslf/lostfound/internal/db"
	"github.com/campuslf/lostfound/internal/location"
	"github.com/campuslf/lostfound/internal/lostfound"
	"github.com/campuslf/lostfound/internal/store"
	"github.com/campuslf/lostfound/internal/uploads"
	"github.com/campuslf/lostfound/internal/web"
	webembed "github.com/campuslf/lostfound/web"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	up, err := uploads.New(cfg.UploadDir)
	if err != nil {
		return err
	}
	locs, err := location.Parse(webembed.LocationsYAML())
	if err != nil {
		return fmt.Errorf("loading locations: %w", err)
	}

	svc := lostfound.New(database, up, locs)
	svc.MaxReviewLen = cfg.MaxReviewLen

	if err := ensureAdmin(ctx, svc, cfg); err != nil {
		return err
	}

	secret := cfg.SecretKey
	if secret == "" {
		secret, err = store.GetSessionSecret(ctx, database)
		if err != nil {
			return err
		}
	}

	webRouter, err := web.NewRouter(svc, secret, cfg.MaxUploadBytes)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(svc))
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server started", "addr", cfg.Addr, "uploads", up.Dir())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped, closing database")
	return nil
}

// ensureAdmin creates the admin credential on first run. Without a
// configured password a random one is generated and printed once.
func ensureAdmin(ctx context.Context, svc *lostfound.Service, cfg *config.Config) error {
	password := cfg.AdminPassword
	generated := password == ""
	if generated {
		var err error
		password, err = generatePassword(16)
		if err != nil {
			return fmt.Errorf("generating password: %w", err)
		}
	}

	created, err := svc.EnsureAdmin(ctx, cfg.AdminUser, password)
	if err != nil {
		return err
	}
	if created {
		slog.Info("admin account created", "username", cfg.AdminUser)
		if generated {
			printInitResult(cfg.AdminUser, password)
		}
	}
	return nil
}

// printInitResult prints the generated admin credential to stdout.
func printInitResult(username, password string) {
	fmt.Println("Admin account created:")
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password. It cannot be recovered.")
	fmt.Println("Change it after logging in at /admin/change-password.")
	fmt.Println()
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
