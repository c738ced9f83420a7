package models

// Provider is a liquidity or signal source that accounts can copy from.
type Provider struct {
	ID     int64  `json:"id" yaml:"id"`
	Nombre string `json:"nombre" yaml:"nombre"`
	Tipo   string `json:"tipo" yaml:"tipo"`
	Estado bool   `json:"estado" yaml:"estado"`
}

// ProviderInput is the provider payload accepted by create and update.
type ProviderInput struct {
	Nombre string `json:"nombre" yaml:"nombre" maxLength:"100" doc:"Provider display name"`
	Tipo   string `json:"tipo" yaml:"tipo" maxLength:"50" doc:"Provider kind, for example signal or liquidity"`
	Estado bool   `json:"estado" yaml:"estado" doc:"Whether the provider is enabled"`
}

// Draft returns the provider fields without its identity.
func (p Provider) Draft() ProviderInput {
	return ProviderInput{
		Nombre: p.Nombre,
		Tipo:   p.Tipo,
		Estado: p.Estado,
	}
}
