package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/lborres/tasklist"
	fiberadapter "github.com/lborres/tasklist/adapters/fiber"
	"github.com/lborres/tasklist/internal/config"
	"github.com/lborres/tasklist/pkg/crypto"
	"github.com/lborres/tasklist/pkg/notify"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Examples:
  tasklist serve
  tasklist serve --config config.yaml --migrate
  TASKLIST_DATABASE_DRIVER=postgres TASKLIST_DATABASE_URL=postgres://... tasklist serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")

	return cmd
}

func logFormat() string {
	format := []string{
		// Timestamp
		"${time}",

		// Response metadata
		"${status}|${latency}",

		// Client info
		"${ip}",

		// Request details
		"${method}|${path}",

		// errors
		"${error}",
	}
	return strings.Join(format, "|") + "\n"
}

func runServe(ctx context.Context, cfg *config.Config, migrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	hasher, err := crypto.NewPasswordHandler(cfg.Security.PasswordHasher, cfg.Security.BcryptCost)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:      "tasklist " + Version,
		ErrorHandler: fiberadapter.ErrorHandler,
	})
	app.Use(recoverer.New())
	app.Use(logger.New(logger.Config{
		Format:     logFormat(),
		TimeFormat: "2006/01/02 15:04:05",
		TimeZone:   "Local",
	}))

	notifier := notify.New(notify.SlackConfig{
		Token:   cfg.Notify.SlackToken,
		URL:     cfg.Notify.SlackURL,
		Channel: cfg.Notify.Channel,
		Timeout: cfg.Notify.Timeout,
	})
	if _, ok := notifier.(notify.NoOp); ok {
		log.Println("slack token not configured; completion notifications disabled")
	}

	_, err = tasklist.New(tasklist.Config{
		Database: db,
		HTTP:     fiberadapter.New(app),
		SessionConfig: &tasklist.SessionConfig{
			TTL:          cfg.Session.TTL,
			CookieName:   cfg.Session.CookieName,
			SecureCookie: cfg.Session.SecureCookie,
		},
		PasswordHasher: hasher,
		Notifier:       notifier,
		NotifyTimeout:  cfg.Notify.Timeout,
	})
	if err != nil {
		return fmt.Errorf("could not create tasklist instance: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Server.Addr(), fiber.ListenConfig{DisableStartupMessage: true})
	}()
	log.Printf("listening on %s (%s storage)", cfg.Server.Addr(), cfg.Database.Driver)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
