package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tradedesk/backoffice/internal/server/service"
)

// HealthBody represents the health check response body
type HealthBody struct {
	Status   string `json:"status" example:"ok" doc:"Health status"`
	Database string `json:"database" example:"ok" doc:"Storage backend status"`
}

// HealthResponse wraps HealthBody.
type HealthResponse struct {
	Body HealthBody
}

// RegisterHealthEndpoint registers /healthz. It answers 503 when the
// storage backend cannot be reached.
func RegisterHealthEndpoint(api huma.API, basePath string, svc service.BackofficeService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        basePath + "/healthz",
		Summary:     "Health check",
		Description: "Reports whether the API and its storage backend are available.",
		Tags:        []string{"health"},
	}, func(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
		if err := svc.Ping(ctx); err != nil {
			return nil, huma.Error503ServiceUnavailable("Database unavailable", err)
		}
		return &HealthResponse{Body: HealthBody{Status: "ok", Database: "ok"}}, nil
	})
}
