package models

// Permission links an account to a provider whose trades it may copy.
// Cuenta and Proveedor hold the account and provider names; they are not
// checked against the other collections.
type Permission struct {
	ID        int64  `json:"id" yaml:"id"`
	Cuenta    string `json:"cuenta" yaml:"cuenta"`
	Proveedor string `json:"proveedor" yaml:"proveedor"`
	Activo    bool   `json:"activo" yaml:"activo"`
}

// PermissionInput is the permission payload accepted by create and update.
type PermissionInput struct {
	Cuenta    string `json:"cuenta" yaml:"cuenta" maxLength:"100" doc:"Account name"`
	Proveedor string `json:"proveedor" yaml:"proveedor" maxLength:"100" doc:"Provider name"`
	Activo    bool   `json:"activo" yaml:"activo" doc:"Whether copying is enabled"`
}

func (p Permission) Draft() PermissionInput {
	return PermissionInput{
		Cuenta:    p.Cuenta,
		Proveedor: p.Proveedor,
		Activo:    p.Activo,
	}
}
