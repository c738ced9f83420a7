package v0_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v0 "github.com/tradedesk/backoffice/internal/server/api/handlers/v0"
	"github.com/tradedesk/backoffice/internal/server/database"
	servicetesting "github.com/tradedesk/backoffice/internal/server/service/testing"
	"github.com/tradedesk/backoffice/pkg/models"
)

func newTestAPI(t *testing.T, fake *servicetesting.FakeService) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))
	v0.RegisterAccountsEndpoints(api, "", fake, nil)
	v0.RegisterProvidersEndpoints(api, "", fake, nil)
	v0.RegisterConfigurationsEndpoints(api, "", fake, nil)
	v0.RegisterPermissionsEndpoints(api, "", fake, nil)
	v0.RegisterHealthEndpoint(api, "", fake)
	v0.RegisterVersionEndpoint(api, "", &v0.VersionBody{Version: "1.0.0", GitCommit: "abc", BuildTime: "now"})
	return mux
}

func do(t *testing.T, mux http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestListAccounts_EmptyIsArray(t *testing.T) {
	mux := newTestAPI(t, servicetesting.NewFakeService())

	w := do(t, mux, http.MethodGet, "/cuentas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateAccount_DefaultsActive(t *testing.T) {
	fake := servicetesting.NewFakeService()
	mux := newTestAPI(t, fake)

	w := do(t, mux, http.MethodPost, "/cuentas", map[string]any{
		"name": "A1", "host": "10.0.0.1", "port": 5000, "fixed_lot": 0.1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.True(t, got.Active)

	w = do(t, mux, http.MethodGet, "/cuentas", nil)
	var list []models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, got, list[0])
}

func TestCreateAccount_SchemaViolations(t *testing.T) {
	mux := newTestAPI(t, servicetesting.NewFakeService())

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing host", body: map[string]any{"name": "A1", "port": 5000, "fixed_lot": 0.1}},
		{name: "port as string", body: map[string]any{"name": "A1", "host": "h", "port": "abc", "fixed_lot": 0.1}},
		{name: "port out of range", body: map[string]any{"name": "A1", "host": "h", "port": 70000, "fixed_lot": 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, mux, http.MethodPost, "/cuentas", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func TestUpdateProvider(t *testing.T) {
	fake := servicetesting.NewFakeService()
	fake.Providers = []models.Provider{{ID: 7, Nombre: "FX", Tipo: "signal", Estado: true}}
	mux := newTestAPI(t, fake)

	w := do(t, mux, http.MethodPut, "/proveedores/7", models.ProviderInput{Nombre: "FX", Tipo: "signal", Estado: false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Provider
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.Provider{ID: 7, Nombre: "FX", Tipo: "signal", Estado: false}, got)
}

func TestUpdateProvider_NotFound(t *testing.T) {
	mux := newTestAPI(t, servicetesting.NewFakeService())

	w := do(t, mux, http.MethodPut, "/proveedores/99", models.ProviderInput{Nombre: "FX", Tipo: "signal"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Proveedor no encontrado")
}

func TestDeleteProvider_ReturnsDeletedRecord(t *testing.T) {
	fake := servicetesting.NewFakeService()
	fake.Providers = []models.Provider{{ID: 3, Nombre: "LP", Tipo: "liquidity"}}
	mux := newTestAPI(t, fake)

	w := do(t, mux, http.MethodDelete, "/proveedores/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Provider
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.ID)

	w = do(t, mux, http.MethodDelete, "/proveedores/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfigurations_AppendOnly(t *testing.T) {
	mux := newTestAPI(t, servicetesting.NewFakeService())

	w := do(t, mux, http.MethodPost, "/configuraciones", models.ConfigurationInput{Clave: "max_lot", Valor: "2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, mux, http.MethodPost, "/configuraciones", models.ConfigurationInput{Clave: "max_lot", Valor: "3"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, mux, http.MethodPut, "/configuraciones/1", models.ConfigurationInput{Clave: "max_lot", Valor: "3"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, mux, http.MethodDelete, "/configuraciones/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPermissions_ServiceErrors(t *testing.T) {
	fake := servicetesting.NewFakeService()
	fake.ListPermissionsFn = func(context.Context) ([]models.Permission, error) {
		return nil, errors.New("connection refused")
	}
	fake.CreatePermissionFn = func(context.Context, *models.PermissionInput) (*models.Permission, error) {
		return nil, database.ErrInvalidInput
	}
	mux := newTestAPI(t, fake)

	w := do(t, mux, http.MethodGet, "/permisos", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(t, mux, http.MethodPost, "/permisos", models.PermissionInput{Cuenta: "A1", Proveedor: "P1", Activo: true})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealth(t *testing.T) {
	fake := servicetesting.NewFakeService()
	mux := newTestAPI(t, fake)

	w := do(t, mux, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	fake.PingErr = errors.New("db down")
	w = do(t, mux, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestVersion(t *testing.T) {
	mux := newTestAPI(t, servicetesting.NewFakeService())

	w := do(t, mux, http.MethodGet, "/version", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got v0.VersionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, v0.VersionBody{Version: "1.0.0", GitCommit: "abc", BuildTime: "now"}, got)
}
