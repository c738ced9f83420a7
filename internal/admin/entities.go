package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tradedesk/backoffice/pkg/models"
)

var errNotANumber = errors.New("must be a number")

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func textField[D any](name, label string, required bool, maxLength int, ptr func(*D) *string) Field[D] {
	return Field[D]{
		Name:      name,
		Label:     label,
		Kind:      FieldText,
		Required:  required,
		MaxLength: maxLength,
		Get:      func(d *D) string { return *ptr(d) },
		Set: func(d *D, v string) error {
			*ptr(d) = v
			return nil
		},
	}
}

func boolField[D any](name, label string, ptr func(*D) *bool) Field[D] {
	return Field[D]{
		Name:  name,
		Label: label,
		Kind:  FieldCheckbox,
		Get:   func(d *D) string { return strconv.FormatBool(*ptr(d)) },
		Set: func(d *D, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*ptr(d) = b
			return nil
		},
	}
}

// An empty number input clears the field to zero; Form.Submit reports it
// when the field is required.
func parseInt(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errNotANumber
	}
	return n, nil
}

func parseFloat(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil {
		return 0, errNotANumber
	}
	return f, nil
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// AccountEntity describes trading accounts.
func AccountEntity() Entity[models.Account, models.AccountInput] {
	return Entity[models.Account, models.AccountInput]{
		Name:     "accounts",
		Singular: "cuenta",
		Plural:   "cuentas",
		Title:    "Cuentas",
		Route:    "/accounts",
		Columns:  []string{"Nombre", "Host", "Puerto", "Activo", "Fixed Lot", "Chat ID"},
		Row: func(a models.Account) []string {
			return []string{
				a.Name,
				a.Host,
				strconv.Itoa(a.Port),
				yesNo(a.Active),
				strconv.FormatFloat(a.FixedLot, 'f', -1, 64),
				a.ChatID,
			}
		},
		ID:    func(a models.Account) int64 { return a.ID },
		Draft: models.Account.Draft,
		Defaults: func() models.AccountInput {
			active := true
			return models.AccountInput{Active: &active}
		},
		Fields: []Field[models.AccountInput]{
			textField("name", "Nombre", true, 100, func(d *models.AccountInput) *string { return &d.Name }),
			textField("host", "Host", true, 100, func(d *models.AccountInput) *string { return &d.Host }),
			{
				Name:     "port",
				Label:    "Puerto",
				Kind:     FieldNumber,
				Required: true,
				Get:      func(d *models.AccountInput) string { return formatInt(d.Port) },
				Set: func(d *models.AccountInput, v string) error {
					n, err := parseInt(v)
					if err != nil {
						return err
					}
					d.Port = n
					return nil
				},
			},
			{
				Name:  "active",
				Label: "Activo",
				Kind:  FieldCheckbox,
				Get:   func(d *models.AccountInput) string { return strconv.FormatBool(d.IsActive()) },
				Set: func(d *models.AccountInput, v string) error {
					b, err := strconv.ParseBool(v)
					if err != nil {
						return err
					}
					d.Active = &b
					return nil
				},
			},
			{
				Name:     "fixed_lot",
				Label:    "Fixed Lot",
				Kind:     FieldNumber,
				Required: true,
				Get:      func(d *models.AccountInput) string { return formatFloat(d.FixedLot) },
				Set: func(d *models.AccountInput, v string) error {
					f, err := parseFloat(v)
					if err != nil {
						return err
					}
					d.FixedLot = f
					return nil
				},
			},
			textField("chat_id", "Chat ID", false, 0, func(d *models.AccountInput) *string { return &d.ChatID }),
		},
		DeletePrompt: "¿Seguro que deseas eliminar esta cuenta?",
	}
}

// ProviderEntity describes liquidity and signal providers.
func ProviderEntity() Entity[models.Provider, models.ProviderInput] {
	return Entity[models.Provider, models.ProviderInput]{
		Name:     "providers",
		Singular: "proveedor",
		Plural:   "proveedores",
		Title:    "Proveedores",
		Route:    "/providers",
		Columns:  []string{"Nombre", "Tipo", "Estado"},
		Row: func(p models.Provider) []string {
			estado := "Inactivo"
			if p.Estado {
				estado = "Activo"
			}
			return []string{p.Nombre, p.Tipo, estado}
		},
		ID:       func(p models.Provider) int64 { return p.ID },
		Draft:    models.Provider.Draft,
		Defaults: func() models.ProviderInput { return models.ProviderInput{Estado: true} },
		Fields: []Field[models.ProviderInput]{
			textField("nombre", "Nombre", true, 100, func(d *models.ProviderInput) *string { return &d.Nombre }),
			textField("tipo", "Tipo", true, 50, func(d *models.ProviderInput) *string { return &d.Tipo }),
			boolField("estado", "Activo", func(d *models.ProviderInput) *bool { return &d.Estado }),
		},
		DeletePrompt: "¿Seguro que deseas eliminar este proveedor?",
	}
}

// ConfigurationEntity describes global settings. They can only be added.
func ConfigurationEntity() Entity[models.Configuration, models.ConfigurationInput] {
	return Entity[models.Configuration, models.ConfigurationInput]{
		Name:     "configurations",
		Singular: "configuración",
		Plural:   "configuraciones",
		Title:    "Configuraciones Globales",
		Route:    "/configurations",
		Columns:  []string{"Clave", "Valor"},
		Row: func(c models.Configuration) []string {
			return []string{c.Clave, c.Valor}
		},
		ID:       func(c models.Configuration) int64 { return c.ID },
		Draft:    models.Configuration.Draft,
		Defaults: func() models.ConfigurationInput { return models.ConfigurationInput{} },
		Fields: []Field[models.ConfigurationInput]{
			textField("clave", "Clave", true, 100, func(d *models.ConfigurationInput) *string { return &d.Clave }),
			textField("valor", "Valor", false, 0, func(d *models.ConfigurationInput) *string { return &d.Valor }),
		},
		AppendOnly: true,
	}
}

// PermissionEntity describes copy-trading permissions.
func PermissionEntity() Entity[models.Permission, models.PermissionInput] {
	return Entity[models.Permission, models.PermissionInput]{
		Name:     "permissions",
		Singular: "permiso",
		Plural:   "permisos",
		Title:    "Permisos de Copiado",
		Route:    "/permissions",
		Columns:  []string{"Cuenta", "Proveedor", "Activo"},
		Row: func(p models.Permission) []string {
			return []string{p.Cuenta, p.Proveedor, yesNo(p.Activo)}
		},
		ID:       func(p models.Permission) int64 { return p.ID },
		Draft:    models.Permission.Draft,
		Defaults: func() models.PermissionInput { return models.PermissionInput{Activo: true} },
		Fields: []Field[models.PermissionInput]{
			textField("cuenta", "Cuenta", true, 100, func(d *models.PermissionInput) *string { return &d.Cuenta }),
			textField("proveedor", "Proveedor", true, 100, func(d *models.PermissionInput) *string { return &d.Proveedor }),
			boolField("activo", "Activo", func(d *models.PermissionInput) *bool { return &d.Activo }),
		},
		DeletePrompt: "¿Seguro que deseas eliminar este permiso?",
	}
}
