package exporter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/backoffice/internal/server/database"
	"github.com/tradedesk/backoffice/internal/server/seed"
	"github.com/tradedesk/backoffice/internal/server/service"
	servicetesting "github.com/tradedesk/backoffice/internal/server/service/testing"
	"github.com/tradedesk/backoffice/pkg/models"
)

func TestExportToPath_WritesSeedFile(t *testing.T) {
	fake := servicetesting.NewFakeService()
	fake.Accounts = []models.Account{{ID: 7, Name: "Master", Host: "10.0.0.1", Port: 5001, Active: false, FixedLot: 0.1}}
	fake.Providers = []models.Provider{{ID: 2, Nombre: "Alpha", Tipo: "señal", Estado: true}}
	fake.Configurations = []models.Configuration{{ID: 1, Clave: "max_lote", Valor: "1.0"}}

	outputPath := filepath.Join(t.TempDir(), "nested", "seed.json")
	count, err := NewService(fake).ExportToPath(context.Background(), outputPath)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	raw, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"id"`)

	d, err := seed.Parse(raw)
	require.NoError(t, err)
	require.Len(t, d.Cuentas, 1)
	assert.Equal(t, "Master", d.Cuentas[0].Name)
	require.NotNil(t, d.Cuentas[0].Active)
	assert.False(t, *d.Cuentas[0].Active)
	assert.Equal(t, "Alpha", d.Proveedores[0].Nombre)
	assert.NotNil(t, d.Permisos)
	assert.Empty(t, d.Permisos)
}

func TestExportToPath_PropagatesListError(t *testing.T) {
	fake := servicetesting.NewFakeService()
	fake.ListProvidersFn = func(context.Context) ([]models.Provider, error) {
		return nil, errors.New("boom")
	}

	_, err := NewService(fake).ExportToPath(context.Background(), filepath.Join(t.TempDir(), "out.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list providers")
}

func TestExportToPath_NilSource(t *testing.T) {
	_, err := NewService(nil).ExportToPath(context.Background(), filepath.Join(t.TempDir(), "out.json"))
	assert.Error(t, err)
}

func TestExportThenImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := service.NewBackofficeService(database.NewMemory(), nil)
	_, err := seed.ImportBuiltinSeedData(ctx, src, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.json")
	exported, err := NewService(src).ExportToPath(ctx, path)
	require.NoError(t, err)

	dst := service.NewBackofficeService(database.NewMemory(), nil)
	imported, err := seed.ImportFile(ctx, dst, path, nil)
	require.NoError(t, err)
	assert.Equal(t, exported, imported)

	want, err := src.ListAccounts(ctx)
	require.NoError(t, err)
	got, err := dst.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
