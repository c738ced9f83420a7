// Package resource builds the list/create/update/delete commands shared by
// every back-office collection. Each command drives an admin.Controller, so
// the CLI and the terminal UI apply the same rules.
package resource

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stoewer/go-strcase"
	"go.uber.org/zap"

	"github.com/tradedesk/backoffice/internal/admin"
	"github.com/tradedesk/backoffice/internal/client"
	"github.com/tradedesk/backoffice/pkg/cli/config"
	"github.com/tradedesk/backoffice/pkg/printer"
)

var (
	apiClient *client.Client
	logger    = zap.NewNop()
)

func SetAPIClient(c *client.Client) {
	apiClient = c
}

// SetLogger sets the logger handed to controllers.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Definition binds an entity descriptor to a cobra command group.
type Definition[R any, D any] struct {
	Use     string
	Aliases []string
	Short   string
	Example string
	// CreateUse names the create subcommand; it defaults to "create".
	CreateUse string
	Entity    admin.Entity[R, D]
	API       func(c *client.Client) admin.EntityAPI[R, D]
}

// NewCommand returns the command group for def. Append-only entities only
// get list and create.
func NewCommand[R any, D any](def Definition[R, D]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     def.Use,
		Aliases: def.Aliases,
		Short:   def.Short,
		Long:    def.Short + ".",
		Example: def.Example,
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(newListCmd(def))
	cmd.AddCommand(newCreateCmd(def))
	if !def.Entity.AppendOnly {
		cmd.AddCommand(newUpdateCmd(def))
		cmd.AddCommand(newDeleteCmd(def))
	}
	return cmd
}

// FlagName is the command-line flag bound to a form field.
func FlagName(field string) string {
	return strcase.KebabCase(field)
}

func newController[R any, D any](def Definition[R, D], confirmer admin.Confirmer) (*admin.Controller[R, D], error) {
	if apiClient == nil {
		return nil, fmt.Errorf("API client not initialized")
	}
	return admin.NewController(admin.Options[R, D]{
		API:       def.API(apiClient),
		Entity:    def.Entity,
		Confirmer: confirmer,
		Notifier: admin.NotifierFunc(func(n admin.Notification) {
			// Failures are returned as command errors.
			if n.Level == admin.LevelInfo {
				printer.PrintSuccess(n.Message)
			}
		}),
		Logger: logger,
	}), nil
}

func mount[R any, D any](ctx context.Context, ctrl *admin.Controller[R, D]) error {
	if err := ctrl.Mount(ctx); err != nil {
		return fmt.Errorf("failed to list %s: %w", ctrl.Entity().Name, err)
	}
	return nil
}

func newListCmd[R any, D any](def Definition[R, D]) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + def.Entity.Plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputType, err := printer.ParseOutputType(output)
			if err != nil {
				return err
			}
			ctrl, err := newController(def, nil)
			if err != nil {
				return err
			}
			if err := mount(cmd.Context(), ctrl); err != nil {
				return err
			}
			defer ctrl.Unmount()

			snap := ctrl.Snapshot()
			p := printer.NewWithWriter(cmd.OutOrStdout(), outputType, false)
			if outputType != printer.OutputTypeTable {
				if err := p.Print(snap.Items); err != nil {
					return fmt.Errorf("failed to output %s: %w", outputType, err)
				}
				return nil
			}

			if len(snap.Items) == 0 {
				p.Infof("No hay %s registrados", def.Entity.Plural)
				return nil
			}
			return renderTable(cmd, ctrl.Table())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")
	return cmd
}

func renderTable[R any](cmd *cobra.Command, table admin.Table[R]) error {
	t := printer.NewTablePrinter(cmd.OutOrStdout())
	t.SetHeaders(append([]string{"ID"}, table.Columns...)...)
	for i, row := range table.Rows {
		id, _ := table.DeleteID(i)
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, strconv.FormatInt(id, 10))
		for _, cell := range row {
			cells = append(cells, printer.TruncateString(cell, 40))
		}
		t.AddRow(cells...)
	}
	if err := t.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// addFieldFlags registers one flag per form field: bool flags for
// checkboxes, string flags for everything else.
func addFieldFlags[D any](cmd *cobra.Command, fields []admin.Field[D]) {
	for _, f := range fields {
		if f.Kind == admin.FieldCheckbox {
			cmd.Flags().Bool(FlagName(f.Name), false, f.Label)
			continue
		}
		cmd.Flags().String(FlagName(f.Name), "", f.Label)
	}
}

// applyFieldFlags copies every flag given on the command line into form.
func applyFieldFlags[D any](cmd *cobra.Command, form *admin.Form[D]) error {
	for _, f := range form.Fields() {
		name := FlagName(f.Name)
		if !cmd.Flags().Changed(name) {
			continue
		}
		var value string
		if f.Kind == admin.FieldCheckbox {
			b, err := cmd.Flags().GetBool(name)
			if err != nil {
				return err
			}
			value = strconv.FormatBool(b)
		} else {
			v, err := cmd.Flags().GetString(name)
			if err != nil {
				return err
			}
			value = v
		}
		if err := form.Set(f.Name, value); err != nil {
			return fmt.Errorf("invalid --%s: %w", name, err)
		}
	}
	return nil
}

func submitForm[R any, D any](cmd *cobra.Command, ctrl *admin.Controller[R, D], form *admin.Form[D]) error {
	if err := applyFieldFlags(cmd, form); err != nil {
		ctrl.CloseForm()
		return err
	}
	draft, err := form.Submit()
	if err != nil {
		ctrl.CloseForm()
		return err
	}
	return ctrl.Submit(cmd.Context(), draft)
}

func newCreateCmd[R any, D any](def Definition[R, D]) *cobra.Command {
	use := def.CreateUse
	if use == "" {
		use = "create"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: "Create a " + def.Entity.Singular,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController(def, nil)
			if err != nil {
				return err
			}
			if err := mount(cmd.Context(), ctrl); err != nil {
				return err
			}
			defer ctrl.Unmount()

			form, err := ctrl.OpenCreateForm()
			if err != nil {
				return err
			}
			if err := submitForm(cmd, ctrl, form); err != nil {
				return fmt.Errorf("failed to create %s: %w", def.Entity.Singular, err)
			}
			return nil
		},
	}
	addFieldFlags(cmd, def.Entity.Fields)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newUpdateCmd[R any, D any](def Definition[R, D]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + def.Entity.Singular + "; omitted flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctrl, err := newController(def, nil)
			if err != nil {
				return err
			}
			if err := mount(cmd.Context(), ctrl); err != nil {
				return err
			}
			defer ctrl.Unmount()

			var (
				target R
				found  bool
			)
			for _, r := range ctrl.Snapshot().Items {
				if def.Entity.ID(r) == id {
					target, found = r, true
					break
				}
			}
			if !found {
				return fmt.Errorf("%s %d: %w", def.Entity.Singular, id, client.ErrNotFound)
			}

			form, err := ctrl.OpenEditForm(target)
			if err != nil {
				return err
			}
			if err := submitForm(cmd, ctrl, form); err != nil {
				return fmt.Errorf("failed to update %s %d: %w", def.Entity.Singular, id, err)
			}
			return nil
		},
	}
	addFieldFlags(cmd, def.Entity.Fields)
	return cmd
}

func newDeleteCmd[R any, D any](def Definition[R, D]) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + def.Entity.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var confirmer admin.Confirmer = admin.AlwaysConfirm
			if !yes && config.GetConfirmDeletes() {
				confirmer = NewStdinConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
			}
			ctrl, err := newController(def, confirmer)
			if err != nil {
				return err
			}
			if err := mount(cmd.Context(), ctrl); err != nil {
				return err
			}
			defer ctrl.Unmount()

			confirmed, err := ctrl.RequestDelete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete %s %d: %w", def.Entity.Singular, id, err)
			}
			if !confirmed {
				printer.PrintInfo("Operación cancelada")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
