package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradedesk/backoffice/pkg/models"
)

func TestTable_AccountRows(t *testing.T) {
	records := []models.Account{
		{ID: 1, Name: "A1", Host: "10.0.0.1", Port: 5000, Active: true, FixedLot: 0.1},
		{ID: 2, Name: "A2", Host: "10.0.0.2", Port: 5001, Active: false, FixedLot: 1.5, ChatID: "42"},
	}
	table := NewTable(AccountEntity(), records)

	assert.Equal(t, []string{"Nombre", "Host", "Puerto", "Activo", "Fixed Lot", "Chat ID"}, table.Columns)
	assert.Equal(t, []string{"A1", "10.0.0.1", "5000", "Sí", "0.1", ""}, table.Rows[0])
	assert.Equal(t, []string{"A2", "10.0.0.2", "5001", "No", "1.5", "42"}, table.Rows[1])
}

func TestTable_ProviderEstadoLabels(t *testing.T) {
	table := NewTable(ProviderEntity(), []models.Provider{
		{ID: 1, Nombre: "FX", Tipo: "signal", Estado: true},
		{ID: 2, Nombre: "LP", Tipo: "liquidity", Estado: false},
	})
	assert.Equal(t, "Activo", table.Rows[0][2])
	assert.Equal(t, "Inactivo", table.Rows[1][2])
}

func TestTable_RowActions(t *testing.T) {
	records := []models.Permission{
		{ID: 10, Cuenta: "A1", Proveedor: "P1", Activo: true},
		{ID: 11, Cuenta: "A2", Proveedor: "P1", Activo: false},
	}
	table := NewTable(PermissionEntity(), records)

	assert.Equal(t, 2, table.Len())

	rec, ok := table.Edit(1)
	assert.True(t, ok)
	assert.Equal(t, records[1], rec)

	id, ok := table.DeleteID(0)
	assert.True(t, ok)
	assert.Equal(t, int64(10), id)

	_, ok = table.Edit(2)
	assert.False(t, ok)
	_, ok = table.DeleteID(-1)
	assert.False(t, ok)
}

func TestTable_Empty(t *testing.T) {
	table := NewTable(ConfigurationEntity(), nil)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Rows)
	assert.Equal(t, []string{"Clave", "Valor"}, table.Columns)
}
