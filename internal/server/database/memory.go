package database

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/tradedesk/backoffice/pkg/models"
)

// memTable is one collection of the in-memory store. Ids are assigned per
// table, starting at 1, like a serial column.
type memTable[T any] struct {
	rows   map[int64]T
	nextID int64
}

func newMemTable[T any]() *memTable[T] {
	return &memTable[T]{rows: make(map[int64]T), nextID: 1}
}

func (t *memTable[T]) list() []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *memTable[T]) insert(build func(id int64) T) T {
	id := t.nextID
	t.nextID++
	row := build(id)
	t.rows[id] = row
	return row
}

func (t *memTable[T]) replace(id int64, build func(id int64) T) (T, error) {
	if _, ok := t.rows[id]; !ok {
		var zero T
		return zero, ErrNotFound
	}
	row := build(id)
	t.rows[id] = row
	return row, nil
}

func (t *memTable[T]) remove(id int64) (T, error) {
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	delete(t.rows, id)
	return row, nil
}

// Memory is an in-memory implementation of Database. It is safe for
// concurrent use and is intended for tests and local development.
// Transactions are not isolated.
type Memory struct {
	mu             sync.RWMutex
	accounts       *memTable[models.Account]
	providers      *memTable[models.Provider]
	configurations *memTable[models.Configuration]
	permissions    *memTable[models.Permission]
}

var _ Database = (*Memory)(nil)

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		accounts:       newMemTable[models.Account](),
		providers:      newMemTable[models.Provider](),
		configurations: newMemTable[models.Configuration](),
		permissions:    newMemTable[models.Permission](),
	}
}

func accountFromInput(id int64, in *models.AccountInput) models.Account {
	return models.Account{
		ID:       id,
		Name:     in.Name,
		Host:     in.Host,
		Port:     in.Port,
		Active:   in.IsActive(),
		FixedLot: in.FixedLot,
		ChatID:   in.ChatID,
	}
}

func (m *Memory) ListAccounts(_ context.Context, _ pgx.Tx) ([]models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accounts.list(), nil
}

func (m *Memory) CreateAccount(_ context.Context, _ pgx.Tx, in *models.AccountInput) (*models.Account, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.accounts.insert(func(id int64) models.Account { return accountFromInput(id, in) })
	return &a, nil
}

func (m *Memory) UpdateAccount(_ context.Context, _ pgx.Tx, id int64, in *models.AccountInput) (*models.Account, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.accounts.replace(id, func(id int64) models.Account { return accountFromInput(id, in) })
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (m *Memory) DeleteAccount(_ context.Context, _ pgx.Tx, id int64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.accounts.remove(id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (m *Memory) ListProviders(_ context.Context, _ pgx.Tx) ([]models.Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providers.list(), nil
}

func (m *Memory) CreateProvider(_ context.Context, _ pgx.Tx, in *models.ProviderInput) (*models.Provider, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.providers.insert(func(id int64) models.Provider {
		return models.Provider{ID: id, Nombre: in.Nombre, Tipo: in.Tipo, Estado: in.Estado}
	})
	return &p, nil
}

func (m *Memory) UpdateProvider(_ context.Context, _ pgx.Tx, id int64, in *models.ProviderInput) (*models.Provider, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.providers.replace(id, func(id int64) models.Provider {
		return models.Provider{ID: id, Nombre: in.Nombre, Tipo: in.Tipo, Estado: in.Estado}
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Memory) DeleteProvider(_ context.Context, _ pgx.Tx, id int64) (*models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.providers.remove(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Memory) ListConfigurations(_ context.Context, _ pgx.Tx) ([]models.Configuration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configurations.list(), nil
}

func (m *Memory) CreateConfiguration(_ context.Context, _ pgx.Tx, in *models.ConfigurationInput) (*models.Configuration, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.configurations.rows {
		if c.Clave == in.Clave {
			return nil, ErrAlreadyExists
		}
	}
	c := m.configurations.insert(func(id int64) models.Configuration {
		return models.Configuration{ID: id, Clave: in.Clave, Valor: in.Valor}
	})
	return &c, nil
}

func (m *Memory) ListPermissions(_ context.Context, _ pgx.Tx) ([]models.Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.permissions.list(), nil
}

func (m *Memory) CreatePermission(_ context.Context, _ pgx.Tx, in *models.PermissionInput) (*models.Permission, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.permissions.insert(func(id int64) models.Permission {
		return models.Permission{ID: id, Cuenta: in.Cuenta, Proveedor: in.Proveedor, Activo: in.Activo}
	})
	return &p, nil
}

func (m *Memory) UpdatePermission(_ context.Context, _ pgx.Tx, id int64, in *models.PermissionInput) (*models.Permission, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.permissions.replace(id, func(id int64) models.Permission {
		return models.Permission{ID: id, Cuenta: in.Cuenta, Proveedor: in.Proveedor, Activo: in.Activo}
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Memory) DeletePermission(_ context.Context, _ pgx.Tx, id int64) (*models.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.permissions.remove(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// InTransaction calls fn with a nil transaction. Writes made before fn
// fails are not rolled back.
func (m *Memory) InTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fn(ctx, nil)
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }
