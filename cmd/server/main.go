package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "plystore/internal/adapters/web"
	"plystore/internal/app"
	"plystore/internal/core"
	"plystore/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	customerService := core.NewCustomerService(pool)
	companyService := core.NewCompanyService(pool)
	inventoryService := core.NewInventoryService(pool)
	challanService := core.NewChallanService(pool)
	paymentService := core.NewPaymentService(pool)
	siteService := core.NewSiteService(pool)
	reportService := core.NewReportService(pool)
	userService := core.NewUserService(pool)

	svc := app.NewAppService(pool, customerService, companyService, inventoryService,
		challanService, paymentService, siteService, reportService, userService)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
