package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tradedesk/backoffice/internal/admin"
)

const notificationBuffer = 32

type notificationMsg admin.Notification

// statusNotifier forwards controller notifications to the status line.
// Notify never blocks; when the buffer is full the notification is dropped.
type statusNotifier struct {
	ch chan admin.Notification
}

func newStatusNotifier() *statusNotifier {
	return &statusNotifier{ch: make(chan admin.Notification, notificationBuffer)}
}

func (n *statusNotifier) Notify(note admin.Notification) {
	select {
	case n.ch <- note:
	default:
	}
}

func (n *statusNotifier) wait() tea.Cmd {
	return func() tea.Msg {
		return notificationMsg(<-n.ch)
	}
}
