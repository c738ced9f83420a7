package admin

import (
	"context"
	"sync"

	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/pkg/models"
)

// fakeProviders is an in-memory EntityAPI for providers. Hooks take
// precedence over the stored data when set.
type fakeProviders struct {
	mu     sync.Mutex
	items  []models.Provider
	nextID int64

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	ListFn   func(ctx context.Context) ([]models.Provider, error)
	CreateFn func(ctx context.Context, in models.ProviderInput) (models.Provider, error)
	UpdateFn func(ctx context.Context, id int64, in models.ProviderInput) (models.Provider, error)
	DeleteFn func(ctx context.Context, id int64) error
}

func newFakeProviders(items ...models.Provider) *fakeProviders {
	f := &fakeProviders{nextID: 1}
	for _, p := range items {
		f.items = append(f.items, p)
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakeProviders) List(ctx context.Context) ([]models.Provider, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Provider, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeProviders) Create(ctx context.Context, in models.ProviderInput) (models.Provider, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()
	if f.CreateFn != nil {
		return f.CreateFn(ctx, in)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Provider{ID: f.nextID, Nombre: in.Nombre, Tipo: in.Tipo, Estado: in.Estado}
	f.nextID++
	f.items = append(f.items, p)
	return p, nil
}

func (f *fakeProviders) Update(ctx context.Context, id int64, in models.ProviderInput) (models.Provider, error) {
	f.mu.Lock()
	f.updateCalls++
	f.mu.Unlock()
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, in)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i] = models.Provider{ID: id, Nombre: in.Nombre, Tipo: in.Tipo, Estado: in.Estado}
			return f.items[i], nil
		}
	}
	return models.Provider{}, &client.NotFoundError{TransportError: &client.TransportError{StatusCode: 404}}
}

func (f *fakeProviders) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	f.deleteCalls++
	f.mu.Unlock()
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &client.NotFoundError{TransportError: &client.TransportError{StatusCode: 404}}
}

func (f *fakeProviders) calls() (list, create, update, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.updateCalls, f.deleteCalls
}

// recordingNotifier keeps every notification it receives.
type recordingNotifier struct {
	mu  sync.Mutex
	got []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recordingNotifier) errors() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.got {
		if n.Level == LevelError {
			out = append(out, n)
		}
	}
	return out
}
