package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/application/usecase"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

// ── Clients ───────────────────────────────────────────────────────────────────

func TestClientUseCase_CRUD(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewClientUseCase(store.Clients())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateClientRequest{
		Name: " Construtora Alfa ", IsLegalEntity: true, RegistrationNumber: "12345678000190", State: "sp",
	})
	require.NoError(t, err)
	assert.Equal(t, "Construtora Alfa", created.Name)
	assert.Equal(t, "SP", created.State)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateClientRequest{City: strPtr("Campinas")})
	require.NoError(t, err)
	assert.Equal(t, "Campinas", updated.City)
	assert.Equal(t, "Construtora Alfa", updated.Name)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Outra", RegistrationNumber: "12345678000190"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUseCase_ListBuscaYPagina(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewClientUseCase(store.Clients())
	ctx := context.Background()
	for _, name := range []string{"Beta Obras", "Alfa Engenharia", "Gama", "alfa construções"} {
		_, err := uc.Create(ctx, dto.CreateClientRequest{Name: name})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, dto.PageRequest{Search: "ALFA", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Alfa Engenharia", out.Items[0].Name)

	out, err = uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Page.Limit)
	assert.Len(t, out.Items, 4)
}

// ── Building sites ────────────────────────────────────────────────────────────

func TestBuildingSiteUseCase_ClienteConObrasNoSeBorra(t *testing.T) {
	store := memory.NewStore()
	clients := usecase.NewClientUseCase(store.Clients())
	sites := usecase.NewBuildingSiteUseCase(store.Sites(), store.Clients())
	ctx := context.Background()

	c, err := clients.Create(ctx, dto.CreateClientRequest{Name: "Alfa"})
	require.NoError(t, err)
	site, err := sites.Create(ctx, dto.CreateBuildingSiteRequest{ClientID: c.ID, Name: "Torre A"})
	require.NoError(t, err)
	require.NotNil(t, site.Client)
	assert.Equal(t, "Alfa", site.Client.Name)

	assert.ErrorIs(t, clients.Delete(ctx, c.ID), domain.ErrHasDependents)

	byClient, err := sites.ListByClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	require.NoError(t, sites.Delete(ctx, site.ID))
	assert.NoError(t, clients.Delete(ctx, c.ID))
}

func TestBuildingSiteUseCase_ClienteInexistente(t *testing.T) {
	store := memory.NewStore()
	sites := usecase.NewBuildingSiteUseCase(store.Sites(), store.Clients())

	_, err := sites.Create(context.Background(), dto.CreateBuildingSiteRequest{ClientID: 42, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildingSiteUseCase_Update(t *testing.T) {
	store := memory.NewStore()
	clients := usecase.NewClientUseCase(store.Clients())
	sites := usecase.NewBuildingSiteUseCase(store.Sites(), store.Clients())
	ctx := context.Background()
	c, _ := clients.Create(ctx, dto.CreateClientRequest{Name: "Alfa"})
	site, _ := sites.Create(ctx, dto.CreateBuildingSiteRequest{ClientID: c.ID, Name: "Torre A"})

	out, err := sites.Update(ctx, site.ID, dto.UpdateBuildingSiteRequest{Address: strPtr("Rua 1, 100")})
	require.NoError(t, err)
	assert.Equal(t, "Torre A", out.Name)
	assert.Equal(t, "Rua 1, 100", out.Address)

	list, err := sites.List(ctx, dto.PageRequest{Search: "torre"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

// ── Rentables ─────────────────────────────────────────────────────────────────

func TestRentableUseCase_Precio(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewRentableUseCase(store.Rentables())
	ctx := context.Background()

	price := decimal.RequireFromString("12.5")
	r, err := uc.Create(ctx, dto.CreateRentableRequest{Name: "Andaime", UnitPrice: &price, TotalCount: 200})
	require.NoError(t, err)
	assert.True(t, r.UnitPrice.Valid)
	assert.Equal(t, "12.5", r.UnitPrice.Decimal.String())

	newPrice := decimal.RequireFromString("15.00")
	_, err = uc.Update(ctx, r.ID, dto.UpdateRentableRequest{UnitPrice: &newPrice}, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Update(ctx, r.ID, dto.UpdateRentableRequest{ClearPrice: true}, true)
	require.NoError(t, err)
	assert.False(t, out.UnitPrice.Valid)

	out, err = uc.Update(ctx, r.ID, dto.UpdateRentableRequest{Name: strPtr("Andaime tubular")}, false)
	require.NoError(t, err)
	assert.Equal(t, "Andaime tubular", out.Name)
}

func TestRentableUseCase_PrecioInvalido(t *testing.T) {
	uc := usecase.NewRentableUseCase(memory.NewStore().Rentables())
	for _, s := range []string{"-1", "1.005"} {
		p := decimal.RequireFromString(s)
		_, err := uc.Create(context.Background(), dto.CreateRentableRequest{Name: "X", UnitPrice: &p})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, s)
	}
}
