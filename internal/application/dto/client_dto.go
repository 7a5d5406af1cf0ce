package dto

import "time"

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name               string `json:"name" validate:"required,min=1,max=200"`
	IsLegalEntity      bool   `json:"is_legal_entity"`
	RegistrationNumber string `json:"registration_number" validate:"omitempty,numeric,min=11,max=14"`
	Address            string `json:"address" validate:"max=300"`
	Neighborhood       string `json:"neighborhood" validate:"max=120"`
	City               string `json:"city" validate:"max=120"`
	State              string `json:"state" validate:"omitempty,len=2,alpha"`
	PhoneNumber        string `json:"phone_number" validate:"max=30"`
}

// UpdateClientRequest entrada para actualizar un cliente; solo se aplican los campos presentes.
type UpdateClientRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=200"`
	IsLegalEntity      *bool   `json:"is_legal_entity"`
	RegistrationNumber *string `json:"registration_number" validate:"omitempty,numeric,min=11,max=14"`
	Address            *string `json:"address" validate:"omitempty,max=300"`
	Neighborhood       *string `json:"neighborhood" validate:"omitempty,max=120"`
	City               *string `json:"city" validate:"omitempty,max=120"`
	State              *string `json:"state" validate:"omitempty,len=2,alpha"`
	PhoneNumber        *string `json:"phone_number" validate:"omitempty,max=30"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	IsLegalEntity      bool      `json:"is_legal_entity"`
	RegistrationNumber string    `json:"registration_number"`
	Address            string    `json:"address"`
	Neighborhood       string    `json:"neighborhood"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	PhoneNumber        string    `json:"phone_number"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
