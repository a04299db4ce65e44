package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	users "github.com/goliatone/go-users"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	cfg, err := users.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	auther, err := users.NewAuthenticator(store, cfg)
	if err != nil {
		log.Fatalf("authenticator: %v", err)
	}

	service := users.NewUserService(store)
	directory := users.NewDirectory(store)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:       "go-users",
			StrictRouting: false,
		}))
	})

	srv.Router().Use(users.SessionMiddleware(auther))

	users.RegisterDirectoryRoutes(srv.Router().Group("/"),
		users.WithControllerAuthenticator(auther),
		users.WithControllerDirectory(directory),
		users.WithControllerService(service),
		users.WithControllerEnvironment(cfg.GetEnvironment()),
	)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv.Serve(addr)

	WaitExitSignal()
}

// buildStore selects the backing store: a sqlite database when DATABASE_URL
// is set, the in-memory store otherwise. The test environment gets the
// embedded fixtures.
func buildStore(ctx context.Context, cfg *users.EnvConfig) (users.Store, error) {
	if dsn := cfg.GetDatabaseURL(); dsn != "" {
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, err
		}

		db := bun.NewDB(sqldb, sqlitedialect.New())

		store := users.NewBunStore(db, users.WithBunIDGenerator(emailID))
		if err := store.Init(ctx); err != nil {
			return nil, err
		}

		return store, nil
	}

	opts := []users.MemoryStoreOption{
		users.WithIDGenerator(emailID),
	}

	if cfg.GetEnvironment() == "test" {
		opts = append(opts, users.WithFixtureFS(users.FixturesFS, users.FixturesPath))
	}

	return users.NewMemoryStore(opts...)
}

// emailID derives a deterministic identifier from the email, falling back
// to a random one when derivation fails.
func emailID(email string) (string, error) {
	if id, err := hashid.NewUUID(email); err == nil {
		return id.String(), nil
	}
	return uuid.NewString(), nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
