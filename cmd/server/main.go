package main

import (
	"context"
	"log"
	"strings"
	"time"

	"kirana-backend/internal/auth"
	"kirana-backend/internal/billing"
	"kirana-backend/internal/catalog"
	"kirana-backend/internal/config"
	"kirana-backend/internal/database"
	"kirana-backend/internal/docgen"
	"kirana-backend/internal/ledger"
	"kirana-backend/internal/models"
	"kirana-backend/internal/report"
	"kirana-backend/internal/settings"
	"kirana-backend/internal/staff"
	"kirana-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	cancel()
	if err != nil {
		log.Fatal("Database connection failed:", err)
	}

	cat := catalog.New(store)
	if err := cat.Refresh(context.Background()); err != nil {
		log.Fatal("Initial catalog load failed:", err)
	}
	log.Printf("Catalog loaded: %d products", cat.Len())

	rec := stock.NewReconciler(store, cat)
	carts := billing.NewCarts(cat)
	checkout := billing.NewCheckout(store, cat, rec)
	ledgerSvc := ledger.New(store)
	settingsSvc := settings.NewService(store)
	reportSvc := report.NewService(store, cat)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(recoverer.New())
	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg, store))
	api.Post("/auth/login", auth.LoginHandler(cfg, store))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(store))

	// Catalog
	protected.Get("/products", catalog.ListProductsHandler(cat))
	protected.Get("/categories", catalog.ListCategoriesHandler())
	manageProducts := auth.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleInventory)
	protected.Post("/products", manageProducts, catalog.CreateProductHandler(cat))
	protected.Put("/products/:id", manageProducts, catalog.UpdateProductHandler(cat))
	protected.Delete("/products/:id", manageProducts, catalog.DeleteProductHandler(cat))
	protected.Post("/products/refresh", manageProducts, catalog.RefreshHandler(cat))

	// Cart & billing
	protected.Get("/cart", billing.GetCartHandler(carts, settingsSvc))
	protected.Post("/cart/items", billing.AddItemHandler(carts, settingsSvc))
	protected.Patch("/cart/items", billing.QuantityHandler(carts, settingsSvc))
	protected.Delete("/cart/items/:code", billing.RemoveItemHandler(carts, settingsSvc))
	protected.Put("/cart/gst", billing.SetGSTHandler(carts, settingsSvc))
	protected.Delete("/cart", billing.ClearCartHandler(carts, settingsSvc))
	protected.Post("/cart/checkout", billing.CheckoutHandler(carts, checkout, settingsSvc))

	protected.Get("/bills", billing.ListBillsHandler(store))
	protected.Get("/bills/:id", billing.GetBillHandler(store))
	protected.Post("/bills/return", billing.ReturnHandler(checkout))

	// Stock
	manageStock := auth.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleInventory)
	protected.Post("/stock/adjust", manageStock, stock.AdjustHandler(rec))
	protected.Get("/stock/movements", stock.HistoryHandler(rec))
	protected.Get("/stock/alerts", stock.AlertsHandler(rec))

	// Credit ledger
	protected.Post("/credit/parties", ledger.AddPartyHandler(ledgerSvc))
	protected.Get("/credit/parties", ledger.ListPartiesHandler(ledgerSvc))
	protected.Get("/credit/parties/:id", ledger.GetPartyHandler(ledgerSvc))
	protected.Post("/credit/parties/:id/transactions", ledger.AddTransactionHandler(ledgerSvc))
	protected.Get("/credit/parties/:id/transactions", ledger.ListTransactionsHandler(ledgerSvc))

	// Staff management
	manageStaff := auth.RequireRole(models.RoleAdmin, models.RoleManager)
	protected.Post("/staff", manageStaff, staff.CreateHandler(store))
	protected.Get("/staff", manageStaff, staff.ListHandler(store))
	protected.Get("/staff/:id", manageStaff, staff.GetHandler(store))
	protected.Put("/staff/:id", manageStaff, staff.UpdateHandler(store))
	protected.Delete("/staff/:id", auth.RequireRole(models.RoleAdmin), staff.DeleteHandler(store))

	// Settings
	protected.Get("/settings", settings.GetHandler(settingsSvc))
	protected.Put("/settings", settings.UpdateHandler(settingsSvc))

	// Reports
	viewReports := auth.RequireRole(models.RoleAdmin, models.RoleManager)
	protected.Get("/reports/sales", viewReports, report.SalesHandler(reportSvc))
	protected.Get("/reports/inventory", viewReports, report.InventoryHandler(reportSvc))
	protected.Get("/reports/credit", viewReports, report.CreditHandler(reportSvc))

	// Printable documents
	protected.Get("/documents/invoice/:billId", docgen.InvoiceHandler(store, settingsSvc))
	protected.Post("/documents/labels", docgen.LabelsHandler(cat))
	protected.Get("/documents/signboard/:code", docgen.SignboardHandler(cat, settingsSvc))

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
