package v0

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/internal/server/telemetry"
	"github.com/tradedesk/backoffice/pkg/models"
)

// RegisterConfigurationsEndpoints registers the append-only configuration
// endpoints under /configuraciones. Keys are unique; a duplicate key is
// answered with 409.
func RegisterConfigurationsEndpoints(api huma.API, basePath string, svc service.BackofficeService, metrics *telemetry.Metrics) {
	registerCollection(api, basePath, collection[models.Configuration, models.ConfigurationInput]{
		Path:     "/configuraciones",
		Noun:     "configuration",
		Tag:      "configuraciones",
		NotFound: "Configuración no encontrada",
		List:     svc.ListConfigurations,
		Create:   svc.CreateConfiguration,
	}, metrics)
}
