package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tradedesk/backoffice/pkg/models"
)

// PostgreSQL is an implementation of the Database interface using PostgreSQL
type PostgreSQL struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Executor is an interface for executing queries (satisfied by both pgx.Tx and pgxpool.Pool)
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// getExecutor returns the appropriate executor (transaction or pool)
func (db *PostgreSQL) getExecutor(tx pgx.Tx) Executor {
	if tx != nil {
		return tx
	}
	return db.pool
}

// NewPostgreSQL connects to connectionURI and brings the schema up to date.
func NewPostgreSQL(ctx context.Context, connectionURI string, logger *zap.Logger) (*PostgreSQL, error) {
	config, err := pgxpool.ParseConfig(connectionURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnIdleTime = 30 * time.Minute
	config.MaxConnLifetime = 2 * time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to acquire connection for migrations: %w", err)
	}
	defer conn.Release()

	if err := migrate(ctx, conn.Conn()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgreSQL{pool: pool, logger: logger}, nil
}

const accountColumns = `id, name, host, port, active, fixed_lot::float8, COALESCE(chat_id, '')`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Host, &a.Port, &a.Active, &a.FixedLot, &a.ChatID); err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *PostgreSQL) ListAccounts(ctx context.Context, tx pgx.Tx) ([]models.Account, error) {
	rows, err := db.getExecutor(tx).Query(ctx, `SELECT `+accountColumns+` FROM cuentas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	out := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return out, nil
}

func (db *PostgreSQL) CreateAccount(ctx context.Context, tx pgx.Tx, in *models.AccountInput) (*models.Account, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	query := `
		INSERT INTO cuentas (name, host, port, active, fixed_lot, chat_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING ` + accountColumns
	a, err := scanAccount(db.getExecutor(tx).QueryRow(ctx, query,
		in.Name, in.Host, in.Port, in.IsActive(), in.FixedLot, in.ChatID))
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return a, nil
}

func (db *PostgreSQL) UpdateAccount(ctx context.Context, tx pgx.Tx, id int64, in *models.AccountInput) (*models.Account, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	query := `
		UPDATE cuentas
		SET name = $2, host = $3, port = $4, active = $5, fixed_lot = $6, chat_id = NULLIF($7, '')
		WHERE id = $1
		RETURNING ` + accountColumns
	a, err := scanAccount(db.getExecutor(tx).QueryRow(ctx, query,
		id, in.Name, in.Host, in.Port, in.IsActive(), in.FixedLot, in.ChatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return a, nil
}

func (db *PostgreSQL) DeleteAccount(ctx context.Context, tx pgx.Tx, id int64) (*models.Account, error) {
	a, err := scanAccount(db.getExecutor(tx).QueryRow(ctx,
		`DELETE FROM cuentas WHERE id = $1 RETURNING `+accountColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}
	return a, nil
}

const providerColumns = `id, nombre, tipo, estado`

func scanProvider(row pgx.Row) (*models.Provider, error) {
	var p models.Provider
	if err := row.Scan(&p.ID, &p.Nombre, &p.Tipo, &p.Estado); err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *PostgreSQL) ListProviders(ctx context.Context, tx pgx.Tx) ([]models.Provider, error) {
	rows, err := db.getExecutor(tx).Query(ctx, `SELECT `+providerColumns+` FROM proveedores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	out := []models.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider row: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provider rows: %w", err)
	}
	return out, nil
}

func (db *PostgreSQL) CreateProvider(ctx context.Context, tx pgx.Tx, in *models.ProviderInput) (*models.Provider, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	p, err := scanProvider(db.getExecutor(tx).QueryRow(ctx, `
		INSERT INTO proveedores (nombre, tipo, estado)
		VALUES ($1, $2, $3)
		RETURNING `+providerColumns, in.Nombre, in.Tipo, in.Estado))
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return p, nil
}

func (db *PostgreSQL) UpdateProvider(ctx context.Context, tx pgx.Tx, id int64, in *models.ProviderInput) (*models.Provider, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	p, err := scanProvider(db.getExecutor(tx).QueryRow(ctx, `
		UPDATE proveedores SET nombre = $2, tipo = $3, estado = $4
		WHERE id = $1
		RETURNING `+providerColumns, id, in.Nombre, in.Tipo, in.Estado))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	return p, nil
}

func (db *PostgreSQL) DeleteProvider(ctx context.Context, tx pgx.Tx, id int64) (*models.Provider, error) {
	p, err := scanProvider(db.getExecutor(tx).QueryRow(ctx,
		`DELETE FROM proveedores WHERE id = $1 RETURNING `+providerColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete provider: %w", err)
	}
	return p, nil
}

func (db *PostgreSQL) ListConfigurations(ctx context.Context, tx pgx.Tx) ([]models.Configuration, error) {
	rows, err := db.getExecutor(tx).Query(ctx, `SELECT id, clave, valor FROM configuraciones ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query configurations: %w", err)
	}
	defer rows.Close()

	out := []models.Configuration{}
	for rows.Next() {
		var c models.Configuration
		if err := rows.Scan(&c.ID, &c.Clave, &c.Valor); err != nil {
			return nil, fmt.Errorf("failed to scan configuration row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating configuration rows: %w", err)
	}
	return out, nil
}

func (db *PostgreSQL) CreateConfiguration(ctx context.Context, tx pgx.Tx, in *models.ConfigurationInput) (*models.Configuration, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	var c models.Configuration
	err := db.getExecutor(tx).QueryRow(ctx, `
		INSERT INTO configuraciones (clave, valor)
		VALUES ($1, $2)
		RETURNING id, clave, valor`, in.Clave, in.Valor).Scan(&c.ID, &c.Clave, &c.Valor)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create configuration: %w", err)
	}
	return &c, nil
}

const permissionColumns = `id, cuenta, proveedor, activo`

func scanPermission(row pgx.Row) (*models.Permission, error) {
	var p models.Permission
	if err := row.Scan(&p.ID, &p.Cuenta, &p.Proveedor, &p.Activo); err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *PostgreSQL) ListPermissions(ctx context.Context, tx pgx.Tx) ([]models.Permission, error) {
	rows, err := db.getExecutor(tx).Query(ctx, `SELECT `+permissionColumns+` FROM permisos_copiado ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer rows.Close()

	out := []models.Permission{}
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permission row: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permission rows: %w", err)
	}
	return out, nil
}

func (db *PostgreSQL) CreatePermission(ctx context.Context, tx pgx.Tx, in *models.PermissionInput) (*models.Permission, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	p, err := scanPermission(db.getExecutor(tx).QueryRow(ctx, `
		INSERT INTO permisos_copiado (cuenta, proveedor, activo)
		VALUES ($1, $2, $3)
		RETURNING `+permissionColumns, in.Cuenta, in.Proveedor, in.Activo))
	if err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}
	return p, nil
}

func (db *PostgreSQL) UpdatePermission(ctx context.Context, tx pgx.Tx, id int64, in *models.PermissionInput) (*models.Permission, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	p, err := scanPermission(db.getExecutor(tx).QueryRow(ctx, `
		UPDATE permisos_copiado SET cuenta = $2, proveedor = $3, activo = $4
		WHERE id = $1
		RETURNING `+permissionColumns, id, in.Cuenta, in.Proveedor, in.Activo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update permission: %w", err)
	}
	return p, nil
}

func (db *PostgreSQL) DeletePermission(ctx context.Context, tx pgx.Tx, id int64) (*models.Permission, error) {
	p, err := scanPermission(db.getExecutor(tx).QueryRow(ctx,
		`DELETE FROM permisos_copiado WHERE id = $1 RETURNING `+permissionColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete permission: %w", err)
	}
	return p, nil
}

// InTransaction executes a function within a database transaction
func (db *PostgreSQL) InTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	//nolint:contextcheck // rollback must run even when the request context is cancelled
	defer func() {
		rollbackCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()
		if rbErr := tx.Rollback(rollbackCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			db.logger.Warn("failed to rollback transaction", zap.Error(rbErr))
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (db *PostgreSQL) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *PostgreSQL) Close() error {
	db.pool.Close()
	return nil
}
