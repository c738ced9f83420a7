package admin

import (
	"context"
	"fmt"
)

// EntityAPI is the CRUD capability a controller consumes for one collection.
type EntityAPI[R any, D any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, draft D) (R, error)
	Update(ctx context.Context, id int64, draft D) (R, error)
	Delete(ctx context.Context, id int64) error
}

// Confirmer asks a human to approve a destructive action. Implementations
// block until an answer is available or ctx is cancelled.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Level classifies a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "info"
}

// Notification is a non-blocking message for the user.
type Notification struct {
	Level   Level
	Message string
	Err     error
}

func (n Notification) String() string {
	if n.Err != nil {
		return fmt.Sprintf("%s: %v", n.Message, n.Err)
	}
	return n.Message
}

// Notifier surfaces notifications. Notify must not block for long; it is
// called from whatever goroutine completed the request.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
