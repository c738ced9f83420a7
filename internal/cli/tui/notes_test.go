package tui

import (
	"sync"

	"github.com/tradedesk/backoffice/internal/admin"
)

type notes struct {
	mu  sync.Mutex
	all []admin.Notification
}

func (n *notes) Notify(note admin.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.all = append(n.all, note)
}

func (n *notes) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.all))
	for _, note := range n.all {
		out = append(out, note.Message)
	}
	return out
}
