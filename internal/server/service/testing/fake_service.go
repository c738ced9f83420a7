// Package testing provides test utilities for the back-office service.
package testing

import (
	"context"
	"sync"

	"github.com/tradedesk/backoffice/internal/server/database"
	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/pkg/models"
)

// FakeService is a configurable fake implementation of service.BackofficeService.
// Data fields back the default behavior; function hooks take precedence when set.
type FakeService struct {
	mu sync.Mutex

	Accounts       []models.Account
	Providers      []models.Provider
	Configurations []models.Configuration
	Permissions    []models.Permission
	PingErr        error

	ListAccountsFn        func(ctx context.Context) ([]models.Account, error)
	CreateAccountFn       func(ctx context.Context, in *models.AccountInput) (*models.Account, error)
	UpdateAccountFn       func(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error)
	DeleteAccountFn       func(ctx context.Context, id int64) (*models.Account, error)
	ListProvidersFn       func(ctx context.Context) ([]models.Provider, error)
	CreateProviderFn      func(ctx context.Context, in *models.ProviderInput) (*models.Provider, error)
	UpdateProviderFn      func(ctx context.Context, id int64, in *models.ProviderInput) (*models.Provider, error)
	DeleteProviderFn      func(ctx context.Context, id int64) (*models.Provider, error)
	ListConfigurationsFn  func(ctx context.Context) ([]models.Configuration, error)
	CreateConfigurationFn func(ctx context.Context, in *models.ConfigurationInput) (*models.Configuration, error)
	ListPermissionsFn     func(ctx context.Context) ([]models.Permission, error)
	CreatePermissionFn    func(ctx context.Context, in *models.PermissionInput) (*models.Permission, error)
	UpdatePermissionFn    func(ctx context.Context, id int64, in *models.PermissionInput) (*models.Permission, error)
	DeletePermissionFn    func(ctx context.Context, id int64) (*models.Permission, error)
}

var _ service.BackofficeService = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

func (f *FakeService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	if f.ListAccountsFn != nil {
		return f.ListAccountsFn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Account{}, f.Accounts...), nil
}

func (f *FakeService) CreateAccount(ctx context.Context, in *models.AccountInput) (*models.Account, error) {
	if f.CreateAccountFn != nil {
		return f.CreateAccountFn(ctx, in)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a := models.Account{
		ID:       int64(len(f.Accounts) + 1),
		Name:     in.Name,
		Host:     in.Host,
		Port:     in.Port,
		Active:   in.IsActive(),
		FixedLot: in.FixedLot,
		ChatID:   in.ChatID,
	}
	f.Accounts = append(f.Accounts, a)
	return &a, nil
}

func (f *FakeService) UpdateAccount(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error) {
	if f.UpdateAccountFn != nil {
		return f.UpdateAccountFn(ctx, id, in)
	}
	return nil, database.ErrNotFound
}

func (f *FakeService) DeleteAccount(ctx context.Context, id int64) (*models.Account, error) {
	if f.DeleteAccountFn != nil {
		return f.DeleteAccountFn(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.Accounts {
		if a.ID == id {
			f.Accounts = append(f.Accounts[:i], f.Accounts[i+1:]...)
			return &a, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *FakeService) ListProviders(ctx context.Context) ([]models.Provider, error) {
	if f.ListProvidersFn != nil {
		return f.ListProvidersFn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Provider{}, f.Providers...), nil
}

func (f *FakeService) CreateProvider(ctx context.Context, in *models.ProviderInput) (*models.Provider, error) {
	if f.CreateProviderFn != nil {
		return f.CreateProviderFn(ctx, in)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Provider{ID: int64(len(f.Providers) + 1), Nombre: in.Nombre, Tipo: in.Tipo, Estado: in.Estado}
	f.Providers = append(f.Providers, p)
	return &p, nil
}

func (f *FakeService) UpdateProvider(ctx context.Context, id int64, in *models.ProviderInput) (*models.Provider, error) {
	if f.UpdateProviderFn != nil {
		return f.UpdateProviderFn(ctx, id, in)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Providers {
		if f.Providers[i].ID == id {
			f.Providers[i] = models.Provider{ID: id, Nombre: in.Nombre, Tipo: in.Tipo, Estado: in.Estado}
			p := f.Providers[i]
			return &p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *FakeService) DeleteProvider(ctx context.Context, id int64) (*models.Provider, error) {
	if f.DeleteProviderFn != nil {
		return f.DeleteProviderFn(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.Providers {
		if p.ID == id {
			f.Providers = append(f.Providers[:i], f.Providers[i+1:]...)
			return &p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *FakeService) ListConfigurations(ctx context.Context) ([]models.Configuration, error) {
	if f.ListConfigurationsFn != nil {
		return f.ListConfigurationsFn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Configuration{}, f.Configurations...), nil
}

func (f *FakeService) CreateConfiguration(ctx context.Context, in *models.ConfigurationInput) (*models.Configuration, error) {
	if f.CreateConfigurationFn != nil {
		return f.CreateConfigurationFn(ctx, in)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Configurations {
		if c.Clave == in.Clave {
			return nil, database.ErrAlreadyExists
		}
	}
	c := models.Configuration{ID: int64(len(f.Configurations) + 1), Clave: in.Clave, Valor: in.Valor}
	f.Configurations = append(f.Configurations, c)
	return &c, nil
}

func (f *FakeService) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	if f.ListPermissionsFn != nil {
		return f.ListPermissionsFn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Permission{}, f.Permissions...), nil
}

func (f *FakeService) CreatePermission(ctx context.Context, in *models.PermissionInput) (*models.Permission, error) {
	if f.CreatePermissionFn != nil {
		return f.CreatePermissionFn(ctx, in)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Permission{ID: int64(len(f.Permissions) + 1), Cuenta: in.Cuenta, Proveedor: in.Proveedor, Activo: in.Activo}
	f.Permissions = append(f.Permissions, p)
	return &p, nil
}

func (f *FakeService) UpdatePermission(ctx context.Context, id int64, in *models.PermissionInput) (*models.Permission, error) {
	if f.UpdatePermissionFn != nil {
		return f.UpdatePermissionFn(ctx, id, in)
	}
	return nil, database.ErrNotFound
}

func (f *FakeService) DeletePermission(ctx context.Context, id int64) (*models.Permission, error) {
	if f.DeletePermissionFn != nil {
		return f.DeletePermissionFn(ctx, id)
	}
	return nil, database.ErrNotFound
}

func (f *FakeService) Ping(context.Context) error {
	return f.PingErr
}
