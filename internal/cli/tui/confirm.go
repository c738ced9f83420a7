package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmRequest struct {
	prompt string
	reply  chan<- bool
}

type confirmRequestMsg confirmRequest

// ModalConfirmer answers delete confirmations through the shell's modal.
// Confirm is called from a command goroutine and blocks until the modal is
// answered or ctx is done.
type ModalConfirmer struct {
	requests chan confirmRequest
}

func NewModalConfirmer() *ModalConfirmer {
	return &ModalConfirmer{requests: make(chan confirmRequest)}
}

func (m *ModalConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	reply := make(chan bool, 1)
	select {
	case m.requests <- confirmRequest{prompt: prompt, reply: reply}:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// wait delivers the next confirmation request to the program.
func (m *ModalConfirmer) wait() tea.Cmd {
	return func() tea.Msg {
		return confirmRequestMsg(<-m.requests)
	}
}
