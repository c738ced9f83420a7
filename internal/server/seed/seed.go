// Package seed loads sample back-office records into the API service.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tradedesk/backoffice/internal/server/database"
	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/pkg/models"
)

//go:embed seed.json
var builtinSeedData []byte

// Data is the file format shared by the seed loader and the exporter.
type Data struct {
	Cuentas         []models.AccountInput       `json:"cuentas"`
	Proveedores     []models.ProviderInput      `json:"proveedores"`
	Configuraciones []models.ConfigurationInput `json:"configuraciones"`
	Permisos        []models.PermissionInput    `json:"permisos"`
}

// Count is the number of records held in d.
func (d *Data) Count() int {
	return len(d.Cuentas) + len(d.Proveedores) + len(d.Configuraciones) + len(d.Permisos)
}

// Parse decodes seed data.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &d, nil
}

// Builtin returns the sample data compiled into the binary.
func Builtin() (*Data, error) {
	return Parse(builtinSeedData)
}

// ImportBuiltinSeedData loads the built-in sample records unless the service
// already holds data.
func ImportBuiltinSeedData(ctx context.Context, svc service.BackofficeService, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	empty, err := isEmpty(ctx, svc)
	if err != nil {
		return 0, err
	}
	if !empty {
		logger.Info("skipping built-in seed data, store is not empty")
		return 0, nil
	}
	d, err := Builtin()
	if err != nil {
		return 0, err
	}
	return Import(ctx, svc, d, logger)
}

// ImportFile loads the records of a file written by the exporter.
func ImportFile(ctx context.Context, svc service.BackofficeService, path string, logger *zap.Logger) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	d, err := Parse(raw)
	if err != nil {
		return 0, err
	}
	return Import(ctx, svc, d, logger)
}

// Import creates every record of d and returns how many were created.
// Configurations whose key already exists are skipped; any other failure
// stops the import.
func Import(ctx context.Context, svc service.BackofficeService, d *Data, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	created := 0

	for i := range d.Cuentas {
		if _, err := svc.CreateAccount(ctx, &d.Cuentas[i]); err != nil {
			return created, fmt.Errorf("failed to import account %q: %w", d.Cuentas[i].Name, err)
		}
		created++
	}
	for i := range d.Proveedores {
		if _, err := svc.CreateProvider(ctx, &d.Proveedores[i]); err != nil {
			return created, fmt.Errorf("failed to import provider %q: %w", d.Proveedores[i].Nombre, err)
		}
		created++
	}
	for i := range d.Configuraciones {
		in := &d.Configuraciones[i]
		if _, err := svc.CreateConfiguration(ctx, in); err != nil {
			if errors.Is(err, database.ErrAlreadyExists) {
				logger.Warn("configuration already exists", zap.String("clave", in.Clave))
				continue
			}
			return created, fmt.Errorf("failed to import configuration %q: %w", in.Clave, err)
		}
		created++
	}
	for i := range d.Permisos {
		if _, err := svc.CreatePermission(ctx, &d.Permisos[i]); err != nil {
			return created, fmt.Errorf("failed to import permission %s/%s: %w", d.Permisos[i].Cuenta, d.Permisos[i].Proveedor, err)
		}
		created++
	}

	logger.Info("imported seed data", zap.Int("records", created))
	return created, nil
}

func isEmpty(ctx context.Context, svc service.BackofficeService) (bool, error) {
	accounts, err := svc.ListAccounts(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list accounts: %w", err)
	}
	providers, err := svc.ListProviders(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list providers: %w", err)
	}
	configs, err := svc.ListConfigurations(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list configurations: %w", err)
	}
	permissions, err := svc.ListPermissions(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list permissions: %w", err)
	}
	return len(accounts)+len(providers)+len(configs)+len(permissions) == 0, nil
}
