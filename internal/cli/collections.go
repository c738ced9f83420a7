package cli

import (
	"github.com/spf13/cobra"

	"github.com/tradedesk/backoffice/internal/admin"
	"github.com/tradedesk/backoffice/internal/cli/resource"
	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/pkg/models"
)

// AccountCmd manages trading accounts.
func AccountCmd() *cobra.Command {
	return resource.NewCommand(resource.Definition[models.Account, models.AccountInput]{
		Use:     "account",
		Aliases: []string{"accounts", "cuenta"},
		Short:   "Commands for managing trading accounts",
		Example: `boctl account list -o json
boctl account create --name Master --host 10.0.0.11 --port 5001 --fixed-lot 0.1
boctl account update 3 --active=false
boctl account delete 3 --yes`,
		Entity: admin.AccountEntity(),
		API: func(c *client.Client) admin.EntityAPI[models.Account, models.AccountInput] {
			return client.Accounts(c)
		},
	})
}

// ProviderCmd manages signal and liquidity providers.
func ProviderCmd() *cobra.Command {
	return resource.NewCommand(resource.Definition[models.Provider, models.ProviderInput]{
		Use:     "provider",
		Aliases: []string{"providers", "proveedor"},
		Short:   "Commands for managing providers",
		Example: `boctl provider list
boctl provider create --nombre "Señales Alpha" --tipo señal
boctl provider update 2 --estado=false`,
		Entity: admin.ProviderEntity(),
		API: func(c *client.Client) admin.EntityAPI[models.Provider, models.ProviderInput] {
			return client.Providers(c)
		},
	})
}

// ConfigCmd manages global configurations. They can only be listed and added.
func ConfigCmd() *cobra.Command {
	return resource.NewCommand(resource.Definition[models.Configuration, models.ConfigurationInput]{
		Use:       "config",
		Aliases:   []string{"configs", "configuracion"},
		Short:     "Commands for managing global configurations",
		CreateUse: "set",
		Example: `boctl config list
boctl config set --clave max_lote --valor 1.0`,
		Entity: admin.ConfigurationEntity(),
		API: func(c *client.Client) admin.EntityAPI[models.Configuration, models.ConfigurationInput] {
			return client.Configurations(c)
		},
	})
}

// PermissionCmd manages copy-trading permissions.
func PermissionCmd() *cobra.Command {
	return resource.NewCommand(resource.Definition[models.Permission, models.PermissionInput]{
		Use:     "permission",
		Aliases: []string{"permissions", "permiso"},
		Short:   "Commands for managing copy-trading permissions",
		Example: `boctl permission create --cuenta "Copia ICMarkets" --proveedor "Señales Alpha"
boctl permission delete 4`,
		Entity: admin.PermissionEntity(),
		API: func(c *client.Client) admin.EntityAPI[models.Permission, models.PermissionInput] {
			return client.Permissions(c)
		},
	})
}
