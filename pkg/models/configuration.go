package models

// Configuration is a global key/value setting. Keys are unique.
type Configuration struct {
	ID    int64  `json:"id" yaml:"id"`
	Clave string `json:"clave" yaml:"clave"`
	Valor string `json:"valor" yaml:"valor"`
}

// ConfigurationInput is the payload accepted when a configuration is created.
type ConfigurationInput struct {
	Clave string `json:"clave" yaml:"clave" maxLength:"100" doc:"Configuration key"`
	Valor string `json:"valor" yaml:"valor" doc:"Configuration value"`
}

func (c Configuration) Draft() ConfigurationInput {
	return ConfigurationInput{Clave: c.Clave, Valor: c.Valor}
}
