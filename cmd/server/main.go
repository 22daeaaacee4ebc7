package main

import (
	"strings"
	"time"

	"pos-backend/internal/audit"
	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/logger"
	"pos-backend/internal/master"
	"pos-backend/internal/posting"
	"pos-backend/internal/procurement"
	"pos-backend/internal/reports"
	"pos-backend/internal/sales"
	"pos-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// .env opsiyonel; yoksa ortam değişkenleriyle devam edilir.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.New("server")

	database.Init(cfg)

	postingSvc := posting.NewService(
		posting.NewGormStore(database.DB),
		logger.New("posting"),
		time.Duration(cfg.PostingTimeoutSec)*time.Second,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("Beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Belge kayıt (GRN + fatura)
	api.Post("/grns", procurement.PostGrnHandler(postingSvc, cfg.DefaultLocID))
	api.Get("/grns", procurement.ListGrnsHandler())
	api.Post("/invoices", sales.PostInvoiceHandler(postingSvc, cfg.DefaultLocID))
	api.Get("/invoices", sales.InvoiceHistoryHandler())
	api.Get("/invoices/pending-count", sales.PendingCountHandler())
	api.Get("/invoices/:id", sales.GetInvoiceHandler())
	api.Post("/invoices/upload", sales.UploadInvoicesHandler())

	// Stok & fiyatlandırma
	api.Get("/items", stock.ListItemsHandler())
	api.Post("/items", stock.CreateItemHandler(cfg.DefaultLocID))
	api.Get("/items/next-code", stock.NextItemCodeHandler())
	api.Get("/items/low-stock", stock.LowStockHandler(cfg.LowStockThreshold))
	api.Get("/items/price", stock.ItemPriceHandler())
	api.Get("/items/price-categories", stock.PriceCategoriesHandler())

	// Kart tanımları
	api.Get("/customers", master.ListCustomersHandler())
	api.Post("/customers/sync", master.SyncCustomersHandler(cfg.DefaultLocID))
	api.Get("/suppliers", master.ListSuppliersHandler())
	api.Get("/staff", master.ListStaffHandler())
	api.Get("/locations", master.ListLocationsHandler())

	// Raporlar
	api.Get("/reports/daily-summary", reports.DailySummaryHandler())
	api.Get("/reports/pnl", reports.PnlHandler())

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Info().Str("port", cfg.HTTPPort).Msg("Server çalışıyor")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("Server başlatılamadı")
	}
}
