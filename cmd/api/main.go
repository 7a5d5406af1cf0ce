package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/luanmenezes0/lift2/internal/application/auth"
	"github.com/luanmenezes0/lift2/internal/application/delivery"
	"github.com/luanmenezes0/lift2/internal/application/ledger"
	"github.com/luanmenezes0/lift2/internal/application/usecase"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
	"github.com/luanmenezes0/lift2/internal/infrastructure/cache"
	"github.com/luanmenezes0/lift2/internal/infrastructure/memory"
	infrapdf "github.com/luanmenezes0/lift2/internal/infrastructure/pdf"
	"github.com/luanmenezes0/lift2/internal/infrastructure/postgres"
	infraxlsx "github.com/luanmenezes0/lift2/internal/infrastructure/xlsx"
	httpRouter "github.com/luanmenezes0/lift2/internal/interfaces/http"
	"github.com/luanmenezes0/lift2/pkg/config"
	"github.com/luanmenezes0/lift2/pkg/logger"
)

// repos agrupa los puertos de persistencia del backend elegido.
type repos struct {
	users      repository.UserRepository
	clients    repository.ClientRepository
	sites      repository.BuildingSiteRepository
	rentables  repository.RentableRepository
	deliveries repository.DeliveryRepository
	txRunner   delivery.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	policy, err := cfg.Rental.Policy()
	if err != nil {
		log.Fatal().Err(err).Msg("política de alquiler")
	}

	ctx := context.Background()
	r, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer r.close()

	// Cache de libros: opcional, solo si REDIS_ADDR está definido.
	var ledgerCache ledger.Cache
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		ledgerCache = cache.NewLedgerCache(rdb, cfg.Redis.LedgerTTL)
		log.Info().Dur("ttl", cfg.Redis.LedgerTTL).Msg("cache de libros habilitada")
	}

	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(r.clients)
	siteUC := usecase.NewBuildingSiteUseCase(r.sites, r.clients)
	rentableUC := usecase.NewRentableUseCase(r.rentables)
	deliveryUC := delivery.NewUseCase(r.txRunner, r.sites, r.rentables, r.deliveries, log)
	ledgerUC := ledger.NewUseCase(r.sites, r.clients, r.rentables, r.deliveries, ledgerCache, policy, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "lift2 API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ClientUC:       clientUC,
		BuildingSiteUC: siteUC,
		RentableUC:     rentableUC,
		DeliveryUC:     deliveryUC,
		LedgerUC:       ledgerUC,
		PDFRenderer:    infrapdf.NewLedgerPDF(policy.Location),
		XLSXRenderer:   infraxlsx.NewLedgerXLSX(policy.Location),
		Clock:          httpRouter.Clock{Now: time.Now, Location: policy.Location},
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre PostgreSQL (y aplica el schema si DB_MIGRATE) o el almacén en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repos, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repos{
			users:      s.Users(),
			clients:    s.Clients(),
			sites:      s.Sites(),
			rentables:  s.Rentables(),
			deliveries: s.Deliveries(),
			txRunner:   s,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("schema aplicado")
	}
	return &repos{
		users:      postgres.NewUserRepository(pool),
		clients:    postgres.NewClientRepository(pool),
		sites:      postgres.NewBuildingSiteRepository(pool),
		rentables:  postgres.NewRentableRepository(pool),
		deliveries: postgres.NewDeliveryRepository(pool),
		txRunner:   postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}
