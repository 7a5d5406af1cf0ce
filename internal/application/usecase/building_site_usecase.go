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

// BuildingSiteUseCase casos de uso CRUD para obras.
type BuildingSiteUseCase struct {
	repo       repository.BuildingSiteRepository
	clientRepo repository.ClientRepository
}

// NewBuildingSiteUseCase construye el caso de uso.
func NewBuildingSiteUseCase(repo repository.BuildingSiteRepository, clientRepo repository.ClientRepository) *BuildingSiteUseCase {
	return &BuildingSiteUseCase{repo: repo, clientRepo: clientRepo}
}

// Create crea una obra para un cliente existente.
func (uc *BuildingSiteUseCase) Create(ctx context.Context, in dto.CreateBuildingSiteRequest) (*dto.BuildingSiteResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	site := &entity.BuildingSite{
		ClientID:  client.ID,
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, site); err != nil {
		return nil, err
	}
	return toBuildingSiteResponse(site, client), nil
}

// GetByID obtiene una obra con el resumen de su cliente.
func (uc *BuildingSiteUseCase) GetByID(ctx context.Context, id int64) (*dto.BuildingSiteResponse, error) {
	site, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(ctx, site.ClientID)
	if err != nil {
		return nil, err
	}
	return toBuildingSiteResponse(site, client), nil
}

// Update actualiza nombre y dirección.
func (uc *BuildingSiteUseCase) Update(ctx context.Context, id int64, in dto.UpdateBuildingSiteRequest) (*dto.BuildingSiteResponse, error) {
	site, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		site.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		site.Address = *in.Address
	}
	site.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, site); err != nil {
		return nil, err
	}
	return toBuildingSiteResponse(site, nil), nil
}

// List lista obras con búsqueda y total.
func (uc *BuildingSiteUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.BuildingSiteListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Search: page.Search, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BuildingSiteResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toBuildingSiteResponse(s, nil))
	}
	return &dto.BuildingSiteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListByClient lista las obras de un cliente.
func (uc *BuildingSiteUseCase) ListByClient(ctx context.Context, clientID int64) ([]dto.BuildingSiteResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BuildingSiteResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toBuildingSiteResponse(s, client))
	}
	return items, nil
}

// Delete elimina una obra junto con sus entregas.
func (uc *BuildingSiteUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toBuildingSiteResponse(s *entity.BuildingSite, client *entity.Client) *dto.BuildingSiteResponse {
	out := &dto.BuildingSiteResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		Name:          s.Name,
		Address:       s.Address,
		LedgerVersion: s.LedgerVersion,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if client != nil {
		out.Client = &dto.ClientSummary{ID: client.ID, Name: client.Name}
	}
	return out
}
