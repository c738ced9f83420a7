// Package database holds the storage layer of the back-office API.
package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/tradedesk/backoffice/pkg/models"
)

// Common database errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabase      = errors.New("database error")
)

// Database is the storage contract shared by the PostgreSQL and in-memory
// backends. Methods accept an optional transaction; a nil tx runs the
// statement on its own. Lists are ordered by id.
type Database interface {
	ListAccounts(ctx context.Context, tx pgx.Tx) ([]models.Account, error)
	CreateAccount(ctx context.Context, tx pgx.Tx, in *models.AccountInput) (*models.Account, error)
	UpdateAccount(ctx context.Context, tx pgx.Tx, id int64, in *models.AccountInput) (*models.Account, error)
	// DeleteAccount removes the account and returns the deleted row.
	DeleteAccount(ctx context.Context, tx pgx.Tx, id int64) (*models.Account, error)

	ListProviders(ctx context.Context, tx pgx.Tx) ([]models.Provider, error)
	CreateProvider(ctx context.Context, tx pgx.Tx, in *models.ProviderInput) (*models.Provider, error)
	UpdateProvider(ctx context.Context, tx pgx.Tx, id int64, in *models.ProviderInput) (*models.Provider, error)
	DeleteProvider(ctx context.Context, tx pgx.Tx, id int64) (*models.Provider, error)

	ListConfigurations(ctx context.Context, tx pgx.Tx) ([]models.Configuration, error)
	// CreateConfiguration returns ErrAlreadyExists when the key is taken.
	CreateConfiguration(ctx context.Context, tx pgx.Tx, in *models.ConfigurationInput) (*models.Configuration, error)

	ListPermissions(ctx context.Context, tx pgx.Tx) ([]models.Permission, error)
	CreatePermission(ctx context.Context, tx pgx.Tx, in *models.PermissionInput) (*models.Permission, error)
	UpdatePermission(ctx context.Context, tx pgx.Tx, id int64, in *models.PermissionInput) (*models.Permission, error)
	DeletePermission(ctx context.Context, tx pgx.Tx, id int64) (*models.Permission, error)

	// InTransaction runs fn in a transaction, committing when it returns nil.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// InTransactionT is a generic helper that wraps InTransaction for functions returning a value.
func InTransactionT[T any](ctx context.Context, db Database, fn func(ctx context.Context, tx pgx.Tx) (T, error)) (T, error) {
	var result T
	err := db.InTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	return result, err
}
