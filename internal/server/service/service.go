// Package service implements the business rules of the back-office API on
// top of the database layer.
package service

import (
	"context"

	"github.com/tradedesk/backoffice/pkg/models"
)

// BackofficeService defines the operations exposed by the REST handlers.
type BackofficeService interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	CreateAccount(ctx context.Context, in *models.AccountInput) (*models.Account, error)
	UpdateAccount(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) (*models.Account, error)

	ListProviders(ctx context.Context) ([]models.Provider, error)
	CreateProvider(ctx context.Context, in *models.ProviderInput) (*models.Provider, error)
	UpdateProvider(ctx context.Context, id int64, in *models.ProviderInput) (*models.Provider, error)
	DeleteProvider(ctx context.Context, id int64) (*models.Provider, error)

	// Configurations are append-only.
	ListConfigurations(ctx context.Context) ([]models.Configuration, error)
	CreateConfiguration(ctx context.Context, in *models.ConfigurationInput) (*models.Configuration, error)

	ListPermissions(ctx context.Context) ([]models.Permission, error)
	CreatePermission(ctx context.Context, in *models.PermissionInput) (*models.Permission, error)
	UpdatePermission(ctx context.Context, id int64, in *models.PermissionInput) (*models.Permission, error)
	DeletePermission(ctx context.Context, id int64) (*models.Permission, error)

	// Ping checks that the storage backend is reachable.
	Ping(ctx context.Context) error
}
