// Package persistence selects the storage backend named by storage.driver
// and exposes its repositories to the dependency graph.
package persistence

import (
	"log/slog"

	"educycle/config"
	"educycle/internal/domain/constants"
	"educycle/internal/domain/repository"
	"educycle/internal/infra/persistence/localstore"
	"educycle/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for NewRepositories, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the full set of storage ports for one backend.
type Repositories struct {
	fx.Out

	TxManager repository.TransactionManager
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Messages  repository.MessageRepository
	Devices   repository.DeviceRepository
	Health    repository.HealthChecker
}

// NewRepositories opens the configured backend and builds its repositories.
func NewRepositories(params Params) (Repositories, error) {
	driver := params.Config.Storage.Driver
	params.Logger.Info("Initializing storage", slog.String("driver", driver))

	switch driver {
	case constants.StorageDriverPostgres:
		if params.Config.Postgres == nil {
			return Repositories{}, errors.New("postgres config is required for postgres driver")
		}

		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			TxManager: postgres.NewTransactionManager(db),
			Users:     postgres.NewUserRepository(db),
			Products:  postgres.NewProductRepository(db),
			Orders:    postgres.NewOrderRepository(db),
			Messages:  postgres.NewMessageRepository(db),
			Devices:   postgres.NewDeviceRepository(db),
			Health:    postgres.NewHealthChecker(db),
		}, nil

	case constants.StorageDriverLocal, "":
		db, err := localstore.New(localstore.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			TxManager: localstore.NewTransactionManager(db),
			Users:     localstore.NewUserRepository(db),
			Products:  localstore.NewProductRepository(db),
			Orders:    localstore.NewOrderRepository(db),
			Messages:  localstore.NewMessageRepository(db),
			Devices:   localstore.NewDeviceRepository(db),
			Health:    localstore.NewHealthChecker(db),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown storage driver: %s", driver)
	}
}
