package main

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// storage is every repository the use cases depend on, backed by one driver.
type storage struct {
	fx.Out

	TxManager      repository.TransactionManager
	CredentialRepo repository.CredentialRepository
	IdentityRepo   repository.IdentityRepository
	ReviewRepo     repository.ReviewRepository
	ProductRepo    repository.ProductRepository
}

// newStorage selects the persistence driver named by storage.driver.
func newStorage(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("Using the in-memory store; data is lost on exit")
		store := memory.NewStore()

		if cfg.Storage.SeedFile != "" {
			products, err := memory.LoadProducts(cfg.Storage.SeedFile)
			if err != nil {
				return storage{}, err
			}
			store.SeedProducts(products...)
			logger.Info("Seeded product catalog", slog.Int("products", len(products)), slog.String("file", cfg.Storage.SeedFile))
		} else {
			logger.Warn("No storage.seedFile configured; the product catalog is empty")
		}

		return storage{
			TxManager:      memory.NewTransactionManager(store),
			CredentialRepo: memory.NewCredentialRepository(store),
			IdentityRepo:   memory.NewIdentityRepository(store),
			ReviewRepo:     memory.NewReviewRepository(store),
			ProductRepo:    memory.NewProductRepository(store),
		}, nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		return storage{}, err
	}

	return storage{
		TxManager:      postgres.NewTransactionManager(db),
		CredentialRepo: postgres.NewCredentialRepository(db),
		IdentityRepo:   postgres.NewIdentityRepository(db),
		ReviewRepo:     postgres.NewReviewRepository(db),
		ProductRepo:    postgres.NewProductRepository(db),
	}, nil
}
