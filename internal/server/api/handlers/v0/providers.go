package v0

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/internal/server/telemetry"
	"github.com/tradedesk/backoffice/pkg/models"
)

// RegisterProvidersEndpoints registers provider CRUD endpoints under /proveedores.
func RegisterProvidersEndpoints(api huma.API, basePath string, svc service.BackofficeService, metrics *telemetry.Metrics) {
	registerCollection(api, basePath, collection[models.Provider, models.ProviderInput]{
		Path:     "/proveedores",
		Noun:     "provider",
		Tag:      "proveedores",
		NotFound: "Proveedor no encontrado",
		List:     svc.ListProviders,
		Create:   svc.CreateProvider,
		Update:   svc.UpdateProvider,
		Delete:   svc.DeleteProvider,
	}, metrics)
}
