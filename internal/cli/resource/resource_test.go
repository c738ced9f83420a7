package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/backoffice/internal/admin"
	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/internal/server"
	"github.com/tradedesk/backoffice/internal/server/config"
	"github.com/tradedesk/backoffice/internal/server/logging"
	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/pkg/models"
)

func newBackend(t *testing.T) service.BackofficeService {
	t.Helper()
	srv, err := server.New(context.Background(), server.Options{Config: &config.Config{
		ListenAddr:   "127.0.0.1:0",
		CORSOrigins:  "*",
		LogLevel:     "info",
		EventLogging: *logging.DefaultEventLoggingConfig(),
	}})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Close()
		SetAPIClient(nil)
	})
	SetAPIClient(client.NewClient(ts.URL))
	return srv.Service()
}

func accountCmd() *cobra.Command {
	return NewCommand(Definition[models.Account, models.AccountInput]{
		Use:    "account",
		Entity: admin.AccountEntity(),
		API: func(c *client.Client) admin.EntityAPI[models.Account, models.AccountInput] {
			return client.Accounts(c)
		},
	})
}

func configCmd() *cobra.Command {
	return NewCommand(Definition[models.Configuration, models.ConfigurationInput]{
		Use:       "config",
		CreateUse: "set",
		Entity:    admin.ConfigurationEntity(),
		API: func(c *client.Client) admin.EntityAPI[models.Configuration, models.ConfigurationInput] {
			return client.Configurations(c)
		},
	})
}

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAccountLifecycle(t *testing.T) {
	svc := newBackend(t)
	ctx := context.Background()

	_, err := run(t, accountCmd(), "", "create", "--name", "Master", "--host", "10.0.0.1", "--port", "5001", "--fixed-lot", "0,1", "--chat-id", "-100")
	require.NoError(t, err)

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	a := accounts[0]
	assert.Equal(t, "Master", a.Name)
	assert.Equal(t, 5001, a.Port)
	assert.InDelta(t, 0.1, a.FixedLot, 1e-9)
	assert.True(t, a.Active)
	assert.Equal(t, "-100", a.ChatID)

	_, err = run(t, accountCmd(), "", "update", "1", "--active=false", "--host", "10.0.0.2")
	require.NoError(t, err)

	accounts, err = svc.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, a.ID, accounts[0].ID)
	assert.False(t, accounts[0].Active)
	assert.Equal(t, "10.0.0.2", accounts[0].Host)
	assert.Equal(t, "Master", accounts[0].Name)

	out, err := run(t, accountCmd(), "", "list", "-o", "json")
	require.NoError(t, err)
	var listed []models.Account
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.Equal(t, accounts, listed)

	out, err = run(t, accountCmd(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NOMBRE")
	assert.Contains(t, out, "Master")

	_, err = run(t, accountCmd(), "", "delete", "1", "--yes")
	require.NoError(t, err)
	accounts, err = svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	out, err = run(t, accountCmd(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No hay cuentas registrados")
}

func TestCreate_RequiredFieldsChecked(t *testing.T) {
	svc := newBackend(t)

	_, err := run(t, accountCmd(), "", "create", "--name", "Master")
	var missing *admin.RequiredFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Fields, "host")

	accounts, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestCreate_InvalidNumber(t *testing.T) {
	newBackend(t)
	_, err := run(t, accountCmd(), "", "create", "--name", "M", "--host", "h", "--port", "abc", "--fixed-lot", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--port")
}

func TestUpdate_AccountWithZeroFixedLot(t *testing.T) {
	svc := newBackend(t)
	ctx := context.Background()
	created, err := svc.CreateAccount(ctx, &models.AccountInput{Name: "Demo", Host: "10.0.0.9", Port: 5001, FixedLot: 0})
	require.NoError(t, err)

	_, err = run(t, accountCmd(), "", "update", "1", "--name", "Demo 2")
	require.NoError(t, err)

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, created.ID, accounts[0].ID)
	assert.Equal(t, "Demo 2", accounts[0].Name)
	assert.Zero(t, accounts[0].FixedLot)
}

func TestConfig_SetEmptyValue(t *testing.T) {
	svc := newBackend(t)

	_, err := run(t, configCmd(), "", "set", "--clave", "modo_mantenimiento")
	require.NoError(t, err)

	configs, err := svc.ListConfigurations(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "modo_mantenimiento", configs[0].Clave)
	assert.Empty(t, configs[0].Valor)
}

func TestUpdate_UnknownID(t *testing.T) {
	newBackend(t)
	_, err := run(t, accountCmd(), "", "update", "42", "--name", "x")
	assert.ErrorIs(t, err, client.ErrNotFound)

	_, err = run(t, accountCmd(), "", "update", "abc")
	assert.Error(t, err)
}

func TestDelete_AsksForConfirmation(t *testing.T) {
	svc := newBackend(t)
	ctx := context.Background()
	_, err := svc.CreateAccount(ctx, &models.AccountInput{Name: "Master", Host: "h", Port: 1, FixedLot: 1})
	require.NoError(t, err)

	out, err := run(t, accountCmd(), "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "¿Seguro que deseas eliminar esta cuenta?")
	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	_, err = run(t, accountCmd(), "sí\n", "delete", "1")
	require.NoError(t, err)
	accounts, err = svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	// Deleting a record that is already gone is not an error.
	_, err = run(t, accountCmd(), "", "delete", "1", "--yes")
	assert.NoError(t, err)
}

func TestConfig_SetAndList(t *testing.T) {
	svc := newBackend(t)
	cmd := configCmd()
	assert.Equal(t, []string{"list", "set"}, []string{cmd.Commands()[0].Name(), cmd.Commands()[1].Name()})

	_, err := run(t, configCmd(), "", "set", "--clave", "max_lote", "--valor", "1.0")
	require.NoError(t, err)

	_, err = run(t, configCmd(), "", "set", "--clave", "max_lote", "--valor", "2.0")
	assert.ErrorIs(t, err, client.ErrValidation)

	configs, err := svc.ListConfigurations(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "1.0", configs[0].Valor)

	out, err := run(t, configCmd(), "", "list", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "clave: max_lote")
}

func TestList_RejectsUnknownOutput(t *testing.T) {
	newBackend(t)
	_, err := run(t, accountCmd(), "", "list", "-o", "xml")
	assert.Error(t, err)
}

func TestList_WithoutClient(t *testing.T) {
	SetAPIClient(nil)
	_, err := run(t, accountCmd(), "", "list")
	assert.EqualError(t, err, "API client not initialized")
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "fixed-lot", FlagName("fixed_lot"))
	assert.Equal(t, "nombre", FlagName("nombre"))
}

func TestStdinConfirmer(t *testing.T) {
	for input, want := range map[string]bool{
		"s\n":   true,
		"SI\n":  true,
		"yes\n": true,
		"n\n":   false,
		"":      false,
		"x\n":   false,
	} {
		var out bytes.Buffer
		ok, err := NewStdinConfirmer(strings.NewReader(input), &out).Confirm(context.Background(), "¿Seguro?")
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, ok, "input %q", input)
		assert.Equal(t, "¿Seguro? [s/N]: ", out.String())
	}
}
