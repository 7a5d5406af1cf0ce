package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
)

// RentableUseCase casos de uso del catálogo de equipos.
type RentableUseCase struct {
	repo repository.RentableRepository
}

// NewRentableUseCase construye el caso de uso.
func NewRentableUseCase(repo repository.RentableRepository) *RentableUseCase {
	return &RentableUseCase{repo: repo}
}

// Create agrega un equipo al catálogo. El precio es opcional.
func (uc *RentableUseCase) Create(ctx context.Context, in dto.CreateRentableRequest) (*dto.RentableResponse, error) {
	price, err := priceFrom(in.UnitPrice)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	r := &entity.Rentable{
		Name:       strings.TrimSpace(in.Name),
		UnitPrice:  price,
		TotalCount: in.TotalCount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRentableResponse(r), nil
}

// GetByID obtiene un equipo.
func (uc *RentableUseCase) GetByID(ctx context.Context, id int64) (*dto.RentableResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRentableResponse(r), nil
}

// Update actualiza un equipo. Cambiar el precio requiere canChangePrice (rol admin).
func (uc *RentableUseCase) Update(ctx context.Context, id int64, in dto.UpdateRentableRequest, canChangePrice bool) (*dto.RentableResponse, error) {
	if in.TouchesPrice() && !canChangePrice {
		return nil, domain.ErrForbidden
	}
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.TotalCount != nil {
		r.TotalCount = *in.TotalCount
	}
	switch {
	case in.ClearPrice:
		r.UnitPrice = decimal.NullDecimal{}
	case in.UnitPrice != nil:
		price, err := priceFrom(in.UnitPrice)
		if err != nil {
			return nil, err
		}
		r.UnitPrice = price
	}
	r.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRentableResponse(r), nil
}

// List devuelve el catálogo completo.
func (uc *RentableUseCase) List(ctx context.Context) ([]dto.RentableResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RentableResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRentableResponse(r))
	}
	return out, nil
}

// Delete elimina un equipo sin entregas.
func (uc *RentableUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// priceFrom valida el precio: no negativo y con a lo sumo dos decimales (NUMERIC(12,2)).
func priceFrom(p *decimal.Decimal) (decimal.NullDecimal, error) {
	if p == nil {
		return decimal.NullDecimal{}, nil
	}
	if p.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("%w: unit_price negativo", domain.ErrInvalidInput)
	}
	if !p.Equal(p.Round(2)) {
		return decimal.NullDecimal{}, fmt.Errorf("%w: unit_price con más de dos decimales", domain.ErrInvalidInput)
	}
	return decimal.NewNullDecimal(p.Round(2)), nil
}

func toRentableResponse(r *entity.Rentable) *dto.RentableResponse {
	return &dto.RentableResponse{
		ID:         r.ID,
		Name:       r.Name,
		UnitPrice:  r.UnitPrice,
		TotalCount: r.TotalCount,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
