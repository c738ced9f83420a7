package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tradedesk/backoffice/pkg/models"
)

// Collection endpoints exposed by the back-office API.
const (
	AccountsPath       = "/cuentas"
	ProvidersPath      = "/proveedores"
	ConfigurationsPath = "/configuraciones"
	PermissionsPath    = "/permisos"
)

// Collection maps CRUD verbs onto one REST collection. R is the persisted
// record returned by the backend and D the draft sent on create and update.
type Collection[R any, D any] struct {
	client     *Client
	path       string
	appendOnly bool
}

// NewCollection binds a collection to path. Append-only collections refuse
// Update and Delete without contacting the server.
func NewCollection[R any, D any](c *Client, path string, appendOnly bool) *Collection[R, D] {
	return &Collection[R, D]{client: c, path: path, appendOnly: appendOnly}
}

func Accounts(c *Client) *Collection[models.Account, models.AccountInput] {
	return NewCollection[models.Account, models.AccountInput](c, AccountsPath, false)
}

func Providers(c *Client) *Collection[models.Provider, models.ProviderInput] {
	return NewCollection[models.Provider, models.ProviderInput](c, ProvidersPath, false)
}

// Configurations is append-only: the API exposes no update or delete for it.
func Configurations(c *Client) *Collection[models.Configuration, models.ConfigurationInput] {
	return NewCollection[models.Configuration, models.ConfigurationInput](c, ConfigurationsPath, true)
}

func Permissions(c *Client) *Collection[models.Permission, models.PermissionInput] {
	return NewCollection[models.Permission, models.PermissionInput](c, PermissionsPath, false)
}

// List fetches the whole collection. Order is whatever the server returns.
func (c *Collection[R, D]) List(ctx context.Context) ([]R, error) {
	var out []R
	if err := c.client.do(ctx, http.MethodGet, c.path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []R{}
	}
	return out, nil
}

// Create submits a draft and returns the record with its server-assigned id.
func (c *Collection[R, D]) Create(ctx context.Context, draft D) (R, error) {
	var out R
	if err := c.client.do(ctx, http.MethodPost, c.path, draft, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Update replaces every field of the record identified by id.
func (c *Collection[R, D]) Update(ctx context.Context, id int64, draft D) (R, error) {
	var out R
	if c.appendOnly {
		return out, fmt.Errorf("update %s: %w", c.path, ErrUnsupported)
	}
	if err := c.client.do(ctx, http.MethodPut, c.itemPath(id), draft, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Delete removes the record identified by id.
func (c *Collection[R, D]) Delete(ctx context.Context, id int64) error {
	if c.appendOnly {
		return fmt.Errorf("delete %s: %w", c.path, ErrUnsupported)
	}
	return c.client.do(ctx, http.MethodDelete, c.itemPath(id), nil, nil)
}

func (c *Collection[R, D]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", c.path, id)
}
