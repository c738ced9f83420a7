package v0

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/internal/server/telemetry"
	"github.com/tradedesk/backoffice/pkg/models"
)

// RegisterPermissionsEndpoints registers copy-trading permission endpoints under /permisos.
func RegisterPermissionsEndpoints(api huma.API, basePath string, svc service.BackofficeService, metrics *telemetry.Metrics) {
	registerCollection(api, basePath, collection[models.Permission, models.PermissionInput]{
		Path:     "/permisos",
		Noun:     "permission",
		Tag:      "permisos",
		NotFound: "Permiso no encontrado",
		List:     svc.ListPermissions,
		Create:   svc.CreatePermission,
		Update:   svc.UpdatePermission,
		Delete:   svc.DeletePermission,
	}, metrics)
}
