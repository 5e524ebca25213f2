package main

import (
	"context"
	"log"
	"net/http"

	webAdapter "backoffice/internal/adapters/web"
	"backoffice/internal/ai"
	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/core"
	"backoffice/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	userService := core.NewUserService(pool)
	customerService := core.NewCustomerService(pool)
	invoiceService := core.NewInvoiceService(pool)
	paymentService := core.NewPaymentService(pool)
	supplierService := core.NewSupplierService(pool)
	staffService := core.NewStaffService(pool)
	stockService := core.NewStockService(pool)
	workflowService := core.NewWorkflowService(pool)
	fuelService := core.NewFuelService(pool)
	statementService := core.NewStatementService(core.NewPgLedgerSource(pool))

	var extractor ai.Extractor
	if cfg.OpenAIAPIKey != "" {
		extractor = ai.NewExtractor(cfg.OpenAIAPIKey)
	} else {
		log.Println("Warning: OpenAI API key is not set; document extraction disabled")
	}

	svc := app.NewAppService(
		userService,
		customerService,
		invoiceService,
		paymentService,
		supplierService,
		staffService,
		stockService,
		workflowService,
		fuelService,
		statementService,
		extractor,
		cfg.CurrencySymbol,
	)

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.JWTSecret)

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
