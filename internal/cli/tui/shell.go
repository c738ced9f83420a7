// Package tui is the interactive terminal console of the back office: a
// top menu with one screen per collection.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tradedesk/backoffice/internal/admin"
	"github.com/tradedesk/backoffice/internal/cli/tui/theme"
	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/pkg/models"
)

// Route is one entry of the top menu.
type Route struct {
	Label string
	Path  string
	New   func() Screen
}

// Shell owns the menu, the active screen, the confirmation modal and the
// status line.
type Shell struct {
	routes []Route
	active int
	screen Screen

	confirmer *ModalConfirmer
	notifier  *statusNotifier
	pending   *confirmRequest
	status    *admin.Notification

	width, height int
}

// NewShell wires a screen per collection to c. Every API call made by the
// screens uses ctx.
func NewShell(ctx context.Context, c *client.Client, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Shell{
		confirmer: NewModalConfirmer(),
		notifier:  newStatusNotifier(),
	}

	s.routes = []Route{
		{Label: "Dashboard", Path: "/", New: func() Screen { return dashboardScreen{} }},
		{Label: "Cuentas", Path: "/accounts", New: func() Screen {
			return NewEntityScreen(ctx, admin.Options[models.Account, models.AccountInput]{
				API: client.Accounts(c), Entity: admin.AccountEntity(),
				Confirmer: s.confirmer, Notifier: s.notifier, Logger: logger,
			})
		}},
		{Label: "Proveedores", Path: "/providers", New: func() Screen {
			return NewEntityScreen(ctx, admin.Options[models.Provider, models.ProviderInput]{
				API: client.Providers(c), Entity: admin.ProviderEntity(),
				Confirmer: s.confirmer, Notifier: s.notifier, Logger: logger,
			})
		}},
		{Label: "Configuraciones", Path: "/configurations", New: func() Screen {
			return NewEntityScreen(ctx, admin.Options[models.Configuration, models.ConfigurationInput]{
				API: client.Configurations(c), Entity: admin.ConfigurationEntity(),
				Confirmer: s.confirmer, Notifier: s.notifier, Logger: logger,
			})
		}},
		{Label: "Permisos", Path: "/permissions", New: func() Screen {
			return NewEntityScreen(ctx, admin.Options[models.Permission, models.PermissionInput]{
				API: client.Permissions(c), Entity: admin.PermissionEntity(),
				Confirmer: s.confirmer, Notifier: s.notifier, Logger: logger,
			})
		}},
	}
	s.screen = s.routes[0].New()
	return s
}

// Route returns the path of the active screen.
func (s *Shell) Route() string { return s.routes[s.active].Path }

// Screen returns the active screen.
func (s *Shell) Screen() Screen { return s.screen }

func (s *Shell) Init() tea.Cmd {
	return tea.Batch(s.screen.Init(), s.confirmer.wait(), s.notifier.wait())
}

// Navigate switches to path, unmounting the current screen. Unknown paths
// and the current path are ignored.
func (s *Shell) Navigate(path string) tea.Cmd {
	for i, r := range s.routes {
		if r.Path == path {
			return s.navigateTo(i)
		}
	}
	return nil
}

func (s *Shell) navigateTo(i int) tea.Cmd {
	n := len(s.routes)
	i = (i%n + n) % n
	if i == s.active {
		return nil
	}
	s.screen.Unmount()
	s.active = i
	s.status = nil
	s.screen = s.routes[i].New()
	return s.screen.Init()
}

// Close unmounts the active screen.
func (s *Shell) Close() {
	s.screen.Unmount()
}

func (s *Shell) answer(ok bool) {
	if s.pending == nil {
		return
	}
	s.pending.reply <- ok
	s.pending = nil
}

func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = m.Width, m.Height
		return s, nil
	case confirmRequestMsg:
		req := confirmRequest(m)
		s.pending = &req
		return s, s.confirmer.wait()
	case notificationMsg:
		n := admin.Notification(m)
		s.status = &n
		return s, s.notifier.wait()
	case tea.KeyMsg:
		return s, s.handleKey(m)
	}

	var cmd tea.Cmd
	s.screen, cmd = s.screen.Update(msg)
	return s, cmd
}

func (s *Shell) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		s.answer(false)
		s.Close()
		return tea.Quit
	}

	if s.pending != nil {
		switch key {
		case "s", "y", "enter":
			s.answer(true)
		case "n", "esc":
			s.answer(false)
		}
		return nil
	}

	if !s.screen.Capturing() {
		switch key {
		case "q":
			s.Close()
			return tea.Quit
		case "1", "2", "3", "4", "5":
			return s.navigateTo(int(key[0] - '1'))
		case "right", "l":
			return s.navigateTo(s.active + 1)
		case "left", "h":
			return s.navigateTo(s.active - 1)
		}
	}

	var cmd tea.Cmd
	s.screen, cmd = s.screen.Update(msg)
	return cmd
}

func (s *Shell) View() string {
	items := make([]string, len(s.routes))
	for i, r := range s.routes {
		items[i] = theme.MenuItemStyle(i == s.active).Render(fmt.Sprintf("%d %s", i+1, r.Label))
	}
	menu := theme.MenuBarStyle().Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))

	parts := []string{menu, s.screen.View()}
	if s.pending != nil {
		parts = append(parts, theme.ModalStyle().Render(
			s.pending.prompt+"\n\n"+theme.HelpStyle().Render("s confirmar · n cancelar"),
		))
	}
	if line := s.statusLine(); line != "" {
		parts = append(parts, "", line)
	}
	parts = append(parts, "", theme.HelpStyle().Render(s.screen.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *Shell) statusLine() string {
	if s.status == nil || strings.TrimSpace(s.status.Message) == "" {
		return ""
	}
	if s.status.Level == admin.LevelError {
		return theme.ErrorStyle().Render(s.status.String())
	}
	return theme.SuccessStyle().Render(s.status.String())
}

// Run starts the console and blocks until the user quits or ctx is done.
func Run(ctx context.Context, c *client.Client, logger *zap.Logger) error {
	shell := NewShell(ctx, c, logger)
	p := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	shell.Close()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
