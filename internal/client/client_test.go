package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/backoffice/pkg/models"
)

func TestPing_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestPing_SingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error when server is unavailable")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one request, got %d", calls.Load())
	}
	if StatusCode(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", StatusCode(err))
	}
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").BaseURL)
	assert.Equal(t, "http://api:8000", NewClient("http://api:8000/").BaseURL)
}

func TestNewClientFromEnv(t *testing.T) {
	t.Setenv(BaseURLEnv, "http://backoffice:9000")
	assert.Equal(t, "http://backoffice:9000", NewClientFromEnv().BaseURL)
}

func TestCollection_Verbs(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotBody = nil
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &gotBody)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":5,"nombre":"FX","tipo":"signal","estado":true}]`))
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"id":6,"nombre":"New","tipo":"signal","estado":true}`))
		case http.MethodPut:
			_, _ = w.Write([]byte(`{"id":5,"nombre":"FX2","tipo":"signal","estado":false}`))
		case http.MethodDelete:
			_, _ = w.Write([]byte(`{"id":5,"nombre":"FX2","tipo":"signal","estado":false}`))
		}
	}))
	defer srv.Close()

	providers := Providers(NewClient(srv.URL))
	ctx := context.Background()

	list, err := providers.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/proveedores", gotPath)
	require.Len(t, list, 1)
	assert.Equal(t, models.Provider{ID: 5, Nombre: "FX", Tipo: "signal", Estado: true}, list[0])

	created, err := providers.Create(ctx, models.ProviderInput{Nombre: "New", Tipo: "signal", Estado: true})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/proveedores", gotPath)
	assert.NotContains(t, gotBody, "id")
	assert.Equal(t, int64(6), created.ID)

	updated, err := providers.Update(ctx, 5, models.ProviderInput{Nombre: "FX2", Tipo: "signal", Estado: false})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/proveedores/5", gotPath)
	assert.Equal(t, false, gotBody["estado"])
	assert.Equal(t, "FX2", updated.Nombre)

	require.NoError(t, providers.Delete(ctx, 5))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/proveedores/5", gotPath)
}

func TestCollection_EmptyListIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	list, err := Accounts(NewClient(srv.URL)).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCollection_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		notFound   bool
		validation bool
	}{
		{name: "not found", status: http.StatusNotFound, notFound: true},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, validation: true},
		{name: "conflict", status: http.StatusConflict, validation: true},
		{name: "bad request", status: http.StatusBadRequest, validation: true},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"detail":"nope"}`, tt.status)
			}))
			defer srv.Close()

			_, err := Permissions(NewClient(srv.URL)).Update(context.Background(), 9, models.PermissionInput{Cuenta: "a", Proveedor: "b"})
			require.Error(t, err)

			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
			assert.Equal(t, tt.validation, errors.Is(err, ErrValidation))
			assert.Equal(t, tt.status, StatusCode(err))

			var te *TransportError
			require.True(t, errors.As(err, &te))
			assert.Contains(t, te.Body, "nope")
		})
	}
}

func TestCollection_NetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Accounts(NewClient(url)).List(context.Background())
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.StatusCode)
	assert.Error(t, te.Err)
}

func TestConfigurations_AppendOnly(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	configs := Configurations(NewClient(srv.URL))

	_, err := configs.Update(context.Background(), 1, models.ConfigurationInput{Clave: "k", Valor: "v"})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, configs.Delete(context.Background(), 1), ErrUnsupported)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGetVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"1.2.0","gitCommit":"abc1234","buildTime":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	v, err := NewClient(srv.URL).GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v.Version)
	assert.Equal(t, "abc1234", v.GitCommit)
}
