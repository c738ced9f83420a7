package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tradedesk/backoffice/internal/admin"
	"github.com/tradedesk/backoffice/internal/cli/tui/theme"
	"github.com/tradedesk/backoffice/internal/client"
)

const (
	maxColumnWidth = 30
	tableHeight    = 12
)

// screenDoneMsg reports that a controller call made by a command finished.
type screenDoneMsg struct {
	screen int64
	err    error
}

// EntityScreen is the list view of one collection with its create/edit
// form. All state transitions go through the controller; the screen only
// mirrors its snapshot.
type EntityScreen[R any, D any] struct {
	id     int64
	ctx    context.Context
	ctrl   *admin.Controller[R, D]
	entity admin.Entity[R, D]

	table table.Model
	form  *formView[D]
	busy  bool
	err   string
}

// NewEntityScreen builds the screen and its controller. The controller is
// mounted by Init.
func NewEntityScreen[R any, D any](ctx context.Context, opts admin.Options[R, D]) *EntityScreen[R, D] {
	t := table.New(
		table.WithColumns(columns(opts.Entity.Columns, nil)),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(theme.ColorBorder)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(theme.ColorPrimary)
	t.SetStyles(styles)

	return &EntityScreen[R, D]{
		id:     nextScreenID(),
		ctx:    ctx,
		ctrl:   admin.NewController(opts),
		entity: opts.Entity,
		table:  t,
	}
}

// columns sizes each column to its widest cell.
func columns(titles []string, rows [][]string) []table.Column {
	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		w := lipgloss.Width(title)
		for _, row := range rows {
			if i < len(row) {
				w = max(w, lipgloss.Width(row[i]))
			}
		}
		cols[i] = table.Column{Title: title, Width: min(w, maxColumnWidth) + 1}
	}
	return cols
}

// Controller exposes the controller behind the screen.
func (s *EntityScreen[R, D]) Controller() *admin.Controller[R, D] { return s.ctrl }

func (s *EntityScreen[R, D]) Capturing() bool { return s.form != nil }

func (s *EntityScreen[R, D]) Unmount() { s.ctrl.Unmount() }

func (s *EntityScreen[R, D]) Init() tea.Cmd {
	s.busy = true
	return s.run(s.ctrl.Mount)
}

// run executes fn off the event loop and reports back with a screenDoneMsg.
func (s *EntityScreen[R, D]) run(fn func(ctx context.Context) error) tea.Cmd {
	id, ctx := s.id, s.ctx
	return func() tea.Msg {
		return screenDoneMsg{screen: id, err: fn(ctx)}
	}
}

func (s *EntityScreen[R, D]) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case screenDoneMsg:
		if m.screen != s.id {
			return s, nil
		}
		s.busy = false
		s.refresh()
		return s, nil
	case tea.KeyMsg:
		if s.form != nil {
			return s, s.updateForm(m)
		}
		return s, s.updateList(m)
	}
	return s, nil
}

func (s *EntityScreen[R, D]) refresh() {
	tbl := s.ctrl.Table()
	rows := make([]table.Row, len(tbl.Rows))
	for i, r := range tbl.Rows {
		rows[i] = table.Row(r)
	}
	s.table.SetRows(nil)
	s.table.SetColumns(columns(tbl.Columns, tbl.Rows))
	s.table.SetRows(rows)
	if c := s.table.Cursor(); c >= len(rows) {
		s.table.SetCursor(max(0, len(rows)-1))
	}
}

func (s *EntityScreen[R, D]) updateList(msg tea.KeyMsg) tea.Cmd {
	if s.busy {
		return nil
	}
	s.err = ""
	switch msg.String() {
	case "n":
		form, err := s.ctrl.OpenCreateForm()
		if err != nil {
			s.setError(err)
			return nil
		}
		s.form = newFormView("Crear "+s.entity.Singular, form)
		return nil
	case "e", "enter":
		record, ok := s.ctrl.Table().Edit(s.table.Cursor())
		if !ok {
			return nil
		}
		form, err := s.ctrl.OpenEditForm(record)
		if err != nil {
			s.setError(err)
			return nil
		}
		s.form = newFormView("Editar "+s.entity.Singular, form)
		return nil
	case "d", "delete":
		if s.entity.AppendOnly {
			s.err = "Esta colección no admite eliminar registros"
			return nil
		}
		id, ok := s.ctrl.Table().DeleteID(s.table.Cursor())
		if !ok {
			return nil
		}
		s.busy = true
		return s.run(func(ctx context.Context) error {
			_, err := s.ctrl.RequestDelete(ctx, id)
			return err
		})
	case "r":
		s.busy = true
		return s.run(s.ctrl.Reload)
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return cmd
}

func (s *EntityScreen[R, D]) updateForm(msg tea.KeyMsg) tea.Cmd {
	if s.busy {
		return nil
	}
	switch msg.String() {
	case "esc":
		s.ctrl.CloseForm()
		s.form = nil
		return nil
	case "enter":
		draft, ok := s.form.submit()
		if !ok {
			return nil
		}
		s.form = nil
		s.busy = true
		return s.run(func(ctx context.Context) error {
			return s.ctrl.Submit(ctx, draft)
		})
	}
	return s.form.update(msg)
}

func (s *EntityScreen[R, D]) setError(err error) {
	switch {
	case errors.Is(err, admin.ErrBusy):
		s.err = "Hay una operación en curso"
	case errors.Is(err, client.ErrUnsupported):
		s.err = "Esta colección no admite edición"
	default:
		s.err = err.Error()
	}
}

func (s *EntityScreen[R, D]) Help() string {
	if s.form != nil {
		return "tab siguiente · espacio marcar · enter guardar · esc cancelar"
	}
	if s.entity.AppendOnly {
		return "n nuevo · r recargar · 1-5/←→ navegar · q salir"
	}
	return "n nuevo · e/enter editar · d eliminar · r recargar · 1-5/←→ navegar · q salir"
}

func (s *EntityScreen[R, D]) View() string {
	snap := s.ctrl.Snapshot()
	parts := []string{theme.HeadingStyle().Render(s.entity.Title)}

	switch {
	case snap.State == admin.StateLoading || snap.State == admin.StateIdle:
		parts = append(parts, theme.StatusStyle().Render("Cargando..."))
	case len(snap.Items) == 0:
		parts = append(parts, theme.StatusStyle().Render("No hay registros"))
	default:
		parts = append(parts, s.table.View())
	}

	if snap.State == admin.StateMutating {
		parts = append(parts, theme.StatusStyle().Render("Guardando..."))
	}
	if s.form != nil {
		parts = append(parts, s.form.View())
	}
	if s.err != "" {
		parts = append(parts, theme.ErrorStyle().Render(s.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
