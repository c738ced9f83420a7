package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tradedesk/backoffice/internal/cli/tui/theme"
)

// Screen is the content shown under the menu for one route.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	// Help is the key hint shown at the bottom.
	Help() string
	// Capturing reports whether the screen consumes every key, e.g. while a
	// form is open.
	Capturing() bool
	// Unmount is called when the user navigates away.
	Unmount()
}

var screenSeq atomic.Int64

// nextScreenID tags messages so results for a screen that was replaced are
// never applied to its successor.
func nextScreenID() int64 {
	return screenSeq.Add(1)
}

const (
	dashboardTitle = "Panel de administración"
	dashboardText  = "Bienvenido al dashboard de la plataforma de trading."
)

type dashboardScreen struct{}

func (dashboardScreen) Init() tea.Cmd                      { return nil }
func (d dashboardScreen) Update(tea.Msg) (Screen, tea.Cmd) { return d, nil }
func (dashboardScreen) Capturing() bool                    { return false }
func (dashboardScreen) Unmount()                           {}
func (dashboardScreen) Help() string                       { return "1-5/←→ navegar · q salir" }

func (dashboardScreen) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.HeadingStyle().Render(dashboardTitle),
		dashboardText,
	)
}
