package models

// Account is a trading terminal connection managed by the back office.
type Account struct {
	ID       int64   `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Host     string  `json:"host" yaml:"host"`
	Port     int     `json:"port" yaml:"port"`
	Active   bool    `json:"active" yaml:"active"`
	FixedLot float64 `json:"fixed_lot" yaml:"fixed_lot"`
	ChatID   string  `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
}

// AccountInput is the account payload accepted by create and update.
// Active is optional; the backend enables accounts when it is omitted.
type AccountInput struct {
	Name     string  `json:"name" yaml:"name" maxLength:"100" doc:"Account name"`
	Host     string  `json:"host" yaml:"host" maxLength:"100" doc:"Terminal host"`
	Port     int     `json:"port" yaml:"port" minimum:"1" maximum:"65535" doc:"Terminal port"`
	Active   *bool   `json:"active,omitempty" yaml:"active,omitempty" doc:"Whether the account receives copied trades"`
	FixedLot float64 `json:"fixed_lot" yaml:"fixed_lot" minimum:"0" doc:"Fixed lot size used for copied trades"`
	ChatID   string  `json:"chat_id,omitempty" yaml:"chat_id,omitempty" doc:"Telegram chat that receives notifications"`
}

// Draft returns the account fields without its identity.
func (a Account) Draft() AccountInput {
	active := a.Active
	return AccountInput{
		Name:     a.Name,
		Host:     a.Host,
		Port:     a.Port,
		Active:   &active,
		FixedLot: a.FixedLot,
		ChatID:   a.ChatID,
	}
}

// IsActive reports the effective active flag, treating an omitted value as enabled.
func (in AccountInput) IsActive() bool {
	return in.Active == nil || *in.Active
}
