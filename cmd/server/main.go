package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mzansi-market/storefront/internal/api"
	"github.com/mzansi-market/storefront/internal/api/handler"
	"github.com/mzansi-market/storefront/internal/core/derive"
	"github.com/mzansi-market/storefront/internal/core/ports"
	"github.com/mzansi-market/storefront/internal/core/service"
	"github.com/mzansi-market/storefront/internal/infrastructure/config"
	"github.com/mzansi-market/storefront/internal/infrastructure/db/file"
	"github.com/mzansi-market/storefront/internal/infrastructure/db/memory"
	mongostore "github.com/mzansi-market/storefront/internal/infrastructure/db/mongo"
	redisstore "github.com/mzansi-market/storefront/internal/infrastructure/db/redis"
	"github.com/mzansi-market/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		l := logger.Get()
		l.Error().Err(err).Msg("storefront stopped")
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "storefront",
	})

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	var auth ports.Authenticator = service.NewMockAuthenticator()
	if cfg.AuthMode == config.AuthModeStrict {
		auth = service.NewDirectoryAuthenticator(b.accounts, 0)
	}
	tokens := service.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	sessions, err := service.NewSessionService(ctx, b.sessions, auth, tokens, logger.Component("session"))
	if err != nil {
		return err
	}

	inventory := service.NewInventoryService(b.listings, logger.Component("inventory"))
	if cfg.Catalog.Seed {
		n, err := inventory.Seed(ctx, service.DefaultCatalog())
		if err != nil {
			return err
		}
		log.Info().Int("inserted", n).Msg("catalog seeded")
	}

	e := api.NewRouter(api.Dependencies{
		Sessions:  sessions,
		Inventory: inventory,
		Shipping: derive.ShippingPolicy{
			FreeThreshold: cfg.Shipping.FreeThreshold,
			FlatFee:       cfg.Shipping.FlatFee,
		},
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
		Readiness: b.readiness,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("auth_mode", cfg.AuthMode).
			Str("session_backend", cfg.Session.Backend).
			Str("catalog_backend", cfg.Catalog.Backend).
			Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// backends holds the storage selected by configuration.
type backends struct {
	sessions  ports.KeyValueStore
	listings  ports.ListingRepository
	accounts  ports.AccountRepository
	readiness map[string]handler.Pinger
	closers   []func()
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{readiness: map[string]handler.Pinger{}}

	var db *mongo.Database
	if cfg.Catalog.Backend == config.BackendMongo {
		client, database, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		db = database
		b.closers = append(b.closers, func() { _ = client.Disconnect(context.Background()) })
		b.readiness["mongodb"] = mongostore.Pinger{Client: client}

		listings := mongostore.NewListingRepository(db)
		if err := listings.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure listing indexes")
		}
		b.listings = listings
	} else {
		b.listings = memory.NewListingRepository()
	}

	if db != nil {
		accounts := mongostore.NewAccountRepository(db)
		if err := accounts.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure account indexes")
		}
		b.accounts = accounts
	} else {
		b.accounts = memory.NewAccountRepository()
	}

	switch cfg.Session.Backend {
	case config.BackendFile:
		store, err := file.Open(cfg.Session.Dir)
		if err != nil {
			b.close()
			return nil, err
		}
		b.sessions = store
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.readiness["redis"] = redisstore.Pinger{Client: client}
		b.sessions = redisstore.NewKVStore(client, redisstore.KVOptions{Retries: 3})
	default:
		b.sessions = memory.NewKVStore()
	}

	return b, nil
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}
