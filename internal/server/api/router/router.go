// Package router contains API routing logic
package router

import (
	"github.com/danielgtaylor/huma/v2"

	v0 "github.com/tradedesk/backoffice/internal/server/api/handlers/v0"
	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/internal/server/telemetry"
)

// NewAPIConfig returns the huma configuration of the back-office API.
// Responses carry bare records, without a $schema property.
func NewAPIConfig(apiVersion string) huma.Config {
	cfg := huma.DefaultConfig("Back-office API", apiVersion)
	cfg.Info.Description = "Administration API for trading accounts, providers, global configurations and copy-trading permissions."
	cfg.CreateHooks = []func(huma.Config) huma.Config{}
	return cfg
}

// RegisterRoutes registers every API route at the root path, where the
// collections have always lived.
func RegisterRoutes(
	api huma.API,
	svc service.BackofficeService,
	metrics *telemetry.Metrics,
	versionInfo *v0.VersionBody,
) {
	pathPrefix := ""

	v0.RegisterHealthEndpoint(api, pathPrefix, svc)
	v0.RegisterVersionEndpoint(api, pathPrefix, versionInfo)
	v0.RegisterAccountsEndpoints(api, pathPrefix, svc, metrics)
	v0.RegisterProvidersEndpoints(api, pathPrefix, svc, metrics)
	v0.RegisterConfigurationsEndpoints(api, pathPrefix, svc, metrics)
	v0.RegisterPermissionsEndpoints(api, pathPrefix, svc, metrics)
}
