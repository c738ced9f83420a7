// Package client exposes the back-office REST client to programs outside
// this module.
package client

import (
	"github.com/tradedesk/backoffice/internal/client"
)

type (
	Client          = client.Client
	VersionResponse = client.VersionResponse
	TransportError  = client.TransportError
)

var (
	ErrNotFound    = client.ErrNotFound
	ErrValidation  = client.ErrValidation
	ErrUnsupported = client.ErrUnsupported
)

// Exposing internal client for external use
func NewClientFromEnv() *client.Client {
	return client.NewClientFromEnv()
}

func NewClient(baseURL string) *client.Client {
	return client.NewClient(baseURL)
}
