package v0

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/internal/server/telemetry"
	"github.com/tradedesk/backoffice/pkg/models"
)

// RegisterAccountsEndpoints registers account CRUD endpoints under /cuentas.
func RegisterAccountsEndpoints(api huma.API, basePath string, svc service.BackofficeService, metrics *telemetry.Metrics) {
	registerCollection(api, basePath, collection[models.Account, models.AccountInput]{
		Path:     "/cuentas",
		Noun:     "account",
		Tag:      "cuentas",
		NotFound: "Cuenta no encontrada",
		List:     svc.ListAccounts,
		Create:   svc.CreateAccount,
		Update:   svc.UpdateAccount,
		Delete:   svc.DeleteAccount,
	}, metrics)
}
