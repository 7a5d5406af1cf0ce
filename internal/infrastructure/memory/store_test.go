package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/rental"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
	"github.com/luanmenezes0/lift2/internal/infrastructure/memory"
)

func seedSite(t *testing.T, s *memory.Store) (siteID, rentableID int64) {
	t.Helper()
	ctx := context.Background()
	client := &entity.Client{Name: "Construtora Alfa"}
	require.NoError(t, s.Clients().Create(ctx, client))
	site := &entity.BuildingSite{ClientID: client.ID, Name: "Obra Centro"}
	require.NoError(t, s.Sites().Create(ctx, site))
	rentable := &entity.Rentable{Name: "Andaime", TotalCount: 100}
	require.NoError(t, s.Rentables().Create(ctx, rentable))
	return site.ID, rentable.ID
}

func line(siteID, rentableID int64) *entity.Delivery {
	return &entity.Delivery{
		BuildingSiteID: siteID,
		RentableID:     rentableID,
		Count:          2,
		DeliveryType:   rental.DirectionAdd,
		Date:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRun_RollbackNoReutilizaIDs(t *testing.T) {
	s := memory.NewStore()
	siteID, rentableID := seedSite(t, s)
	ctx := context.Background()

	var descartada *entity.Delivery
	boom := errors.New("boom")
	err := s.Run(ctx, func(deliveries repository.DeliveryRepository, _ repository.BuildingSiteRepository) error {
		descartada = line(siteID, rentableID)
		require.NoError(t, deliveries.CreateBatch(ctx, []*entity.Delivery{descartada}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Deliveries().GetByID(ctx, descartada.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "la entrega de una transacción fallida no debe quedar")

	nueva := line(siteID, rentableID)
	require.NoError(t, s.Run(ctx, func(deliveries repository.DeliveryRepository, _ repository.BuildingSiteRepository) error {
		return deliveries.CreateBatch(ctx, []*entity.Delivery{nueva})
	}))
	assert.Greater(t, nueva.ID, descartada.ID)
}

func TestRun_ExitoConContextoCanceladoDuranteFn(t *testing.T) {
	s := memory.NewStore()
	siteID, rentableID := seedSite(t, s)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := line(siteID, rentableID)
	err := s.Run(ctx, func(deliveries repository.DeliveryRepository, _ repository.BuildingSiteRepository) error {
		if err := deliveries.CreateBatch(ctx, []*entity.Delivery{d}); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.NoError(t, err, "fn confirmó la escritura; Run no debe reportar fallo")

	got, err := s.Deliveries().GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestRun_ContextoYaCanceladoNoEjecuta(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.DeliveryRepository, repository.BuildingSiteRepository) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
