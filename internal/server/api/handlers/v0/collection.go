// Package v0 contains the REST handlers of the back-office API.
package v0

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tradedesk/backoffice/internal/server/database"
	"github.com/tradedesk/backoffice/internal/server/telemetry"
)

// RecordByIDInput addresses one record of a collection.
type RecordByIDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Record id"`
}

// CreateRecordRequest carries a draft in the request body.
type CreateRecordRequest[D any] struct {
	Body D
}

// UpdateRecordRequest replaces every field of the record with the draft.
type UpdateRecordRequest[D any] struct {
	ID   int64 `path:"id" minimum:"1" doc:"Record id"`
	Body D
}

// ListResponse is a bare JSON array of records.
type ListResponse[R any] struct {
	Body []R
}

// RecordResponse holds a single record.
type RecordResponse[R any] struct {
	Body R
}

// collection describes one REST resource. Update and Delete are nil for
// append-only collections.
type collection[R any, D any] struct {
	// Path is the resource path, e.g. "/cuentas".
	Path string
	// Noun is the English singular used in operation ids and summaries.
	Noun     string
	Tag      string
	NotFound string

	List   func(ctx context.Context) ([]R, error)
	Create func(ctx context.Context, in *D) (*R, error)
	Update func(ctx context.Context, id int64, in *D) (*R, error)
	Delete func(ctx context.Context, id int64) (*R, error)
}

func (c collection[R, D]) toHumaError(err error, action string) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return huma.Error404NotFound(c.NotFound)
	case errors.Is(err, database.ErrAlreadyExists):
		return huma.Error409Conflict(capitalize(c.Noun) + " already exists")
	case errors.Is(err, database.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("Failed to "+action+" "+c.Noun, err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func registerCollection[R any, D any](api huma.API, basePath string, c collection[R, D], metrics *telemetry.Metrics) {
	plural := c.Noun + "s"
	slug := strings.ReplaceAll(c.Noun, " ", "-")

	huma.Register(api, huma.Operation{
		OperationID: "list-" + slug + "s",
		Method:      http.MethodGet,
		Path:        basePath + c.Path,
		Summary:     "List " + plural,
		Description: "List every " + c.Noun + " ordered by id.",
		Tags:        []string{c.Tag},
	}, func(ctx context.Context, _ *struct{}) (*ListResponse[R], error) {
		items, err := c.List(ctx)
		if err != nil {
			return nil, c.toHumaError(err, "list")
		}
		if items == nil {
			items = []R{}
		}
		return &ListResponse[R]{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-" + slug,
		Method:      http.MethodPost,
		Path:        basePath + c.Path,
		Summary:     "Create " + c.Noun,
		Description: "Create a " + c.Noun + ". The id is assigned by the server.",
		Tags:        []string{c.Tag},
	}, func(ctx context.Context, input *CreateRecordRequest[D]) (*RecordResponse[R], error) {
		created, err := c.Create(ctx, &input.Body)
		if err != nil {
			return nil, c.toHumaError(err, "create")
		}
		metrics.RecordMutation(ctx, c.Tag, "create")
		return &RecordResponse[R]{Body: *created}, nil
	})

	if c.Update != nil {
		huma.Register(api, huma.Operation{
			OperationID: "update-" + slug,
			Method:      http.MethodPut,
			Path:        basePath + c.Path + "/{id}",
			Summary:     "Update " + c.Noun,
			Description: "Replace every field of a " + c.Noun + " by id.",
			Tags:        []string{c.Tag},
		}, func(ctx context.Context, input *UpdateRecordRequest[D]) (*RecordResponse[R], error) {
			updated, err := c.Update(ctx, input.ID, &input.Body)
			if err != nil {
				return nil, c.toHumaError(err, "update")
			}
			metrics.RecordMutation(ctx, c.Tag, "update")
			return &RecordResponse[R]{Body: *updated}, nil
		})
	}

	if c.Delete != nil {
		huma.Register(api, huma.Operation{
			OperationID: "delete-" + slug,
			Method:      http.MethodDelete,
			Path:        basePath + c.Path + "/{id}",
			Summary:     "Delete " + c.Noun,
			Description: "Delete a " + c.Noun + " by id and return the deleted record.",
			Tags:        []string{c.Tag},
		}, func(ctx context.Context, input *RecordByIDInput) (*RecordResponse[R], error) {
			deleted, err := c.Delete(ctx, input.ID)
			if err != nil {
				return nil, c.toHumaError(err, "delete")
			}
			metrics.RecordMutation(ctx, c.Tag, "delete")
			return &RecordResponse[R]{Body: *deleted}, nil
		})
	}
}
