package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tradedesk/backoffice/internal/client"
)

// State is the lifecycle position of a list screen.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFormOpen
	StateMutating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFormOpen:
		return "form-open"
	case StateMutating:
		return "mutating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrBusy is returned while a mutation or a delete confirmation is pending.
	ErrBusy = errors.New("another operation is in progress")
	// ErrInvalidState is returned for transitions the current state does not allow.
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrUnmounted is returned once the screen has been torn down.
	ErrUnmounted = errors.New("screen is no longer mounted")
)

// Options wires a controller to its collaborators.
type Options[R any, D any] struct {
	API    EntityAPI[R, D]
	Entity Entity[R, D]
	// Confirmer approves deletes. A nil Confirmer declines every delete.
	Confirmer Confirmer
	Notifier  Notifier
	Logger    *zap.Logger
}

// Snapshot is a consistent copy of a controller's state for rendering.
type Snapshot[R any, D any] struct {
	State      State
	Items      []R
	EditTarget *R
	Form       *Form[D]
	// Confirming is set while a delete prompt is waiting for an answer.
	Confirming bool
	// Err is the last failure; it is cleared by the next successful fetch.
	Err error
}

// Controller owns the list-view lifecycle of one collection. The displayed
// collection is always the result of the last successful List call; after
// every mutation the whole collection is fetched again rather than patched.
type Controller[R any, D any] struct {
	api       EntityAPI[R, D]
	entity    Entity[R, D]
	confirmer Confirmer
	notifier  Notifier
	logger    *zap.Logger

	mu         sync.Mutex
	state      State
	items      []R
	editTarget *R
	form       *Form[D]
	confirming bool
	unmounted  bool
	lastErr    error
}

// NewController builds an idle controller. opts.API must not be nil.
func NewController[R any, D any](opts Options[R, D]) *Controller[R, D] {
	if opts.API == nil {
		panic("admin: NewController requires an EntityAPI")
	}
	c := &Controller[R, D]{
		api:       opts.API,
		entity:    opts.Entity,
		confirmer: opts.Confirmer,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		state:     StateIdle,
	}
	if c.confirmer == nil {
		c.confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
	}
	if c.notifier == nil {
		c.notifier = discardNotifier{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.With(zap.String("entity", c.entity.Name))
	return c
}

// Entity returns the descriptor the controller was built with.
func (c *Controller[R, D]) Entity() Entity[R, D] { return c.entity }

// Mount performs the initial load: Idle -> Loading -> Ready. A failed load
// still ends in Ready, with an empty collection and an error notification.
func (c *Controller[R, D]) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return ErrUnmounted
	}
	if c.state != StateIdle {
		c.mu.Unlock()
		return fmt.Errorf("%w: mount while %s", ErrInvalidState, c.state)
	}
	c.setState(StateLoading)
	c.mu.Unlock()

	return c.load(ctx)
}

// Reload fetches the collection again on demand.
func (c *Controller[R, D]) Reload(ctx context.Context) error {
	c.mu.Lock()
	if err := c.checkInteractive(StateReady); err != nil {
		c.mu.Unlock()
		return err
	}
	c.setState(StateLoading)
	c.mu.Unlock()

	return c.load(ctx)
}

// Unmount marks the screen as torn down. Requests still in flight complete,
// but their results are no longer applied.
func (c *Controller[R, D]) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmounted = true
	c.form = nil
	c.editTarget = nil
}

// OpenCreateForm opens a form seeded with the entity defaults.
func (c *Controller[R, D]) OpenCreateForm() (*Form[D], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkInteractive(StateReady, StateFormOpen); err != nil {
		return nil, err
	}
	c.editTarget = nil
	c.form = NewForm(c.entity.Fields, c.entity.Defaults(), false)
	c.setState(StateFormOpen)
	return c.form, nil
}

// OpenEditForm opens a form seeded from record.
func (c *Controller[R, D]) OpenEditForm(record R) (*Form[D], error) {
	if c.entity.AppendOnly {
		return nil, fmt.Errorf("edit %s: %w", c.entity.Name, client.ErrUnsupported)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkInteractive(StateReady, StateFormOpen); err != nil {
		return nil, err
	}
	target := record
	c.editTarget = &target
	c.form = NewForm(c.entity.Fields, c.entity.Draft(record), true)
	c.setState(StateFormOpen)
	return c.form, nil
}

// CloseForm discards the open form without calling the API.
func (c *Controller[R, D]) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateFormOpen {
		return
	}
	c.editTarget = nil
	c.form = nil
	c.setState(StateReady)
}

// Submit creates the draft, or updates the edit target when the form was
// opened on a record, then fetches the collection again. The edit target is
// cleared before the request is sent, so a failed submit lands in Ready with
// the form closed.
func (c *Controller[R, D]) Submit(ctx context.Context, draft D) error {
	c.mu.Lock()
	if err := c.checkInteractive(StateFormOpen); err != nil {
		c.mu.Unlock()
		return err
	}
	target := c.editTarget
	c.editTarget = nil
	c.form = nil
	c.setState(StateMutating)
	c.mu.Unlock()

	var err error
	if target == nil {
		_, err = c.api.Create(ctx, draft)
	} else {
		_, err = c.api.Update(ctx, c.entity.ID(*target), draft)
	}
	if err != nil {
		return c.fail(fmt.Sprintf("Error al guardar en %s", c.entity.Plural), err)
	}

	c.notify(Notification{Level: LevelInfo, Message: fmt.Sprintf("Cambios guardados en %s", c.entity.Plural)})
	return c.load(ctx)
}

// RequestDelete asks the Confirmer for approval and, when granted, deletes
// id and fetches the collection again. It reports whether the delete was
// confirmed. A record that is already gone counts as deleted.
func (c *Controller[R, D]) RequestDelete(ctx context.Context, id int64) (bool, error) {
	if c.entity.AppendOnly {
		return false, fmt.Errorf("delete %s: %w", c.entity.Name, client.ErrUnsupported)
	}

	c.mu.Lock()
	if err := c.checkInteractive(StateReady); err != nil {
		c.mu.Unlock()
		return false, err
	}
	c.confirming = true
	c.mu.Unlock()

	ok, err := c.confirmer.Confirm(ctx, c.entity.DeletePrompt)

	c.mu.Lock()
	c.confirming = false
	if err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("delete confirmation failed: %w", err)
	}
	if !ok {
		c.mu.Unlock()
		c.logger.Debug("delete declined", zap.Int64("id", id))
		return false, nil
	}
	if c.unmounted {
		c.mu.Unlock()
		return false, ErrUnmounted
	}
	c.setState(StateMutating)
	c.mu.Unlock()

	err = c.api.Delete(ctx, id)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		return true, c.fail(fmt.Sprintf("Error al eliminar en %s", c.entity.Plural), err)
	}
	if err != nil {
		c.logger.Debug("record already deleted", zap.Int64("id", id))
	}

	c.notify(Notification{Level: LevelInfo, Message: fmt.Sprintf("Registro eliminado de %s", c.entity.Plural)})
	return true, c.load(ctx)
}

// Snapshot returns a copy of the current state.
func (c *Controller[R, D]) Snapshot() Snapshot[R, D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]R, len(c.items))
	copy(items, c.items)
	var target *R
	if c.editTarget != nil {
		t := *c.editTarget
		target = &t
	}
	return Snapshot[R, D]{
		State:      c.state,
		Items:      items,
		EditTarget: target,
		Form:       c.form,
		Confirming: c.confirming,
		Err:        c.lastErr,
	}
}

// Table renders the current collection.
func (c *Controller[R, D]) Table() Table[R] {
	return NewTable(c.entity, c.Snapshot().Items)
}

// load lists the collection and lands in Ready. Results that arrive after
// Unmount are dropped.
func (c *Controller[R, D]) load(ctx context.Context) error {
	items, err := c.api.List(ctx)

	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		c.logger.Debug("dropping list result after unmount")
		return nil
	}
	c.setState(StateReady)
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		c.notify(Notification{
			Level:   LevelError,
			Message: fmt.Sprintf("Error al cargar %s", c.entity.Plural),
			Err:     err,
		})
		return err
	}
	if items == nil {
		items = []R{}
	}
	c.items = items
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// fail restores Ready after a failed mutation and surfaces the error.
func (c *Controller[R, D]) fail(message string, err error) error {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		c.logger.Debug("dropping mutation failure after unmount", zap.Error(err))
		return err
	}
	c.setState(StateReady)
	c.lastErr = err
	c.mu.Unlock()

	c.notify(Notification{Level: LevelError, Message: message, Err: err})
	return err
}

// checkInteractive must be called with mu held.
func (c *Controller[R, D]) checkInteractive(allowed ...State) error {
	if c.unmounted {
		return ErrUnmounted
	}
	if c.confirming || c.state == StateMutating {
		return ErrBusy
	}
	for _, s := range allowed {
		if c.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidState, c.state)
}

// setState must be called with mu held.
func (c *Controller[R, D]) setState(next State) {
	if c.state == next {
		return
	}
	c.logger.Debug("state transition", zap.Stringer("from", c.state), zap.Stringer("to", next))
	c.state = next
}

func (c *Controller[R, D]) notify(n Notification) {
	if n.Level == LevelError {
		c.logger.Warn(n.Message, zap.Error(n.Err))
	}
	c.notifier.Notify(n)
}
