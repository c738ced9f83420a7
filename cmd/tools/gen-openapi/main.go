package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"gopkg.in/yaml.v3"

	v0 "github.com/tradedesk/backoffice/internal/server/api/handlers/v0"
	"github.com/tradedesk/backoffice/internal/server/api/router"
	"github.com/tradedesk/backoffice/internal/server/database"
	"github.com/tradedesk/backoffice/internal/server/service"
	"github.com/tradedesk/backoffice/internal/version"
)

func main() {
	outputPath := flag.String("output", "openapi.yaml", "Output path for OpenAPI spec")
	versionOverride := flag.String("version", "", "Override the API version (defaults to version.Version)")
	flag.Parse()

	apiVersion := version.Version
	if *versionOverride != "" {
		apiVersion = *versionOverride
	}

	spec := generateSpec(apiVersion)

	yamlData, err := yaml.Marshal(spec)
	if err != nil {
		log.Fatalf("Failed to marshal OpenAPI spec to YAML: %v", err)
	}

	if err := os.WriteFile(*outputPath, yamlData, 0644); err != nil {
		log.Fatalf("Failed to write OpenAPI spec to %s: %v", *outputPath, err)
	}

	absPath, err := filepath.Abs(*outputPath)
	if err != nil {
		absPath = *outputPath
	}
	fmt.Printf("OpenAPI spec generated: %s\n", absPath)
}

// generateSpec creates a Huma API, registers all routes, and returns the
// OpenAPI spec.
func generateSpec(apiVersion string) *huma.OpenAPI {
	mux := http.NewServeMux()
	api := humago.New(mux, router.NewAPIConfig(apiVersion))

	// Handlers bind service methods at registration time, so an empty
	// in-memory service stands in for the real one. It is never called.
	svc := service.NewBackofficeService(database.NewMemory(), nil)
	router.RegisterRoutes(api, svc, nil, &v0.VersionBody{Version: apiVersion})

	return api.OpenAPI()
}
