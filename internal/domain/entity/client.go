package entity

import "time"

// Client cliente que alquila equipos (persona física o jurídica).
type Client struct {
	ID                 int64
	Name               string
	IsLegalEntity      bool
	RegistrationNumber string // CPF o CNPJ, solo dígitos
	Address            string
	Neighborhood       string
	City               string
	State              string // UF
	PhoneNumber        string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
