package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tradedesk/backoffice/internal/server/database"
	"github.com/tradedesk/backoffice/internal/server/logging"
	"github.com/tradedesk/backoffice/pkg/models"
)

type backofficeServiceImpl struct {
	db     database.Database
	logger *zap.Logger
}

var _ BackofficeService = (*backofficeServiceImpl)(nil)

// NewBackofficeService creates a new service backed by db.
func NewBackofficeService(db database.Database, logger *zap.Logger) BackofficeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &backofficeServiceImpl{db: db, logger: logger.Named("service")}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", database.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateAccount(in *models.AccountInput) error {
	if in == nil {
		return database.ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Host) == "" {
		return invalid("name and host are required")
	}
	if in.Port < 1 || in.Port > 65535 {
		return invalid("port %d out of range", in.Port)
	}
	if in.FixedLot < 0 {
		return invalid("fixed_lot must not be negative")
	}
	return nil
}

func (s *backofficeServiceImpl) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.db.ListAccounts(ctx, nil)
}

func (s *backofficeServiceImpl) CreateAccount(ctx context.Context, in *models.AccountInput) (*models.Account, error) {
	if err := validateAccount(in); err != nil {
		return nil, err
	}
	a, err := s.db.CreateAccount(ctx, nil, in)
	if err != nil {
		return nil, err
	}
	logging.WithRequestID(ctx, s.logger).Info("account created", zap.Int64("id", a.ID), zap.String("name", a.Name))
	return a, nil
}

func (s *backofficeServiceImpl) UpdateAccount(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error) {
	if err := validateAccount(in); err != nil {
		return nil, err
	}
	return s.db.UpdateAccount(ctx, nil, id, in)
}

func (s *backofficeServiceImpl) DeleteAccount(ctx context.Context, id int64) (*models.Account, error) {
	a, err := s.db.DeleteAccount(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	logging.WithRequestID(ctx, s.logger).Info("account deleted", zap.Int64("id", id))
	return a, nil
}

func validateProvider(in *models.ProviderInput) error {
	if in == nil {
		return database.ErrInvalidInput
	}
	if strings.TrimSpace(in.Nombre) == "" || strings.TrimSpace(in.Tipo) == "" {
		return invalid("nombre and tipo are required")
	}
	return nil
}

func (s *backofficeServiceImpl) ListProviders(ctx context.Context) ([]models.Provider, error) {
	return s.db.ListProviders(ctx, nil)
}

func (s *backofficeServiceImpl) CreateProvider(ctx context.Context, in *models.ProviderInput) (*models.Provider, error) {
	if err := validateProvider(in); err != nil {
		return nil, err
	}
	p, err := s.db.CreateProvider(ctx, nil, in)
	if err != nil {
		return nil, err
	}
	logging.WithRequestID(ctx, s.logger).Info("provider created", zap.Int64("id", p.ID), zap.String("nombre", p.Nombre))
	return p, nil
}

func (s *backofficeServiceImpl) UpdateProvider(ctx context.Context, id int64, in *models.ProviderInput) (*models.Provider, error) {
	if err := validateProvider(in); err != nil {
		return nil, err
	}
	return s.db.UpdateProvider(ctx, nil, id, in)
}

func (s *backofficeServiceImpl) DeleteProvider(ctx context.Context, id int64) (*models.Provider, error) {
	p, err := s.db.DeleteProvider(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	logging.WithRequestID(ctx, s.logger).Info("provider deleted", zap.Int64("id", id))
	return p, nil
}

func (s *backofficeServiceImpl) ListConfigurations(ctx context.Context) ([]models.Configuration, error) {
	return s.db.ListConfigurations(ctx, nil)
}

func (s *backofficeServiceImpl) CreateConfiguration(ctx context.Context, in *models.ConfigurationInput) (*models.Configuration, error) {
	if in == nil || strings.TrimSpace(in.Clave) == "" {
		return nil, invalid("clave is required")
	}
	c, err := s.db.CreateConfiguration(ctx, nil, in)
	if err != nil {
		return nil, err
	}
	logging.WithRequestID(ctx, s.logger).Info("configuration created", zap.String("clave", c.Clave))
	return c, nil
}

func validatePermission(in *models.PermissionInput) error {
	if in == nil {
		return database.ErrInvalidInput
	}
	if strings.TrimSpace(in.Cuenta) == "" || strings.TrimSpace(in.Proveedor) == "" {
		return invalid("cuenta and proveedor are required")
	}
	return nil
}

func (s *backofficeServiceImpl) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	return s.db.ListPermissions(ctx, nil)
}

func (s *backofficeServiceImpl) CreatePermission(ctx context.Context, in *models.PermissionInput) (*models.Permission, error) {
	if err := validatePermission(in); err != nil {
		return nil, err
	}
	p, err := s.db.CreatePermission(ctx, nil, in)
	if err != nil {
		return nil, err
	}
	logging.WithRequestID(ctx, s.logger).Info("permission created",
		zap.Int64("id", p.ID), zap.String("cuenta", p.Cuenta), zap.String("proveedor", p.Proveedor))
	return p, nil
}

func (s *backofficeServiceImpl) UpdatePermission(ctx context.Context, id int64, in *models.PermissionInput) (*models.Permission, error) {
	if err := validatePermission(in); err != nil {
		return nil, err
	}
	return s.db.UpdatePermission(ctx, nil, id, in)
}

func (s *backofficeServiceImpl) DeletePermission(ctx context.Context, id int64) (*models.Permission, error) {
	p, err := s.db.DeletePermission(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	logging.WithRequestID(ctx, s.logger).Info("permission deleted", zap.Int64("id", id))
	return p, nil
}

func (s *backofficeServiceImpl) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
