package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente. Un CPF/CNPJ repetido devuelve domain.ErrDuplicate.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	now := time.Now()
	client := &entity.Client{
		Name:               strings.TrimSpace(in.Name),
		IsLegalEntity:      in.IsLegalEntity,
		RegistrationNumber: in.RegistrationNumber,
		Address:            in.Address,
		Neighborhood:       in.Neighborhood,
		City:               in.City,
		State:              strings.ToUpper(in.State),
		PhoneNumber:        in.PhoneNumber,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Update actualiza los campos presentes en el request.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		client.Name = strings.TrimSpace(*in.Name)
	}
	if in.IsLegalEntity != nil {
		client.IsLegalEntity = *in.IsLegalEntity
	}
	if in.RegistrationNumber != nil {
		client.RegistrationNumber = *in.RegistrationNumber
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.Neighborhood != nil {
		client.Neighborhood = *in.Neighborhood
	}
	if in.City != nil {
		client.City = *in.City
	}
	if in.State != nil {
		client.State = strings.ToUpper(*in.State)
	}
	if in.PhoneNumber != nil {
		client.PhoneNumber = *in.PhoneNumber
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes con búsqueda por nombre y paginación.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Search: page.Search, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un cliente; falla con domain.ErrHasDependents si aún tiene obras.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:                 c.ID,
		Name:               c.Name,
		IsLegalEntity:      c.IsLegalEntity,
		RegistrationNumber: c.RegistrationNumber,
		Address:            c.Address,
		Neighborhood:       c.Neighborhood,
		City:               c.City,
		State:              c.State,
		PhoneNumber:        c.PhoneNumber,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
