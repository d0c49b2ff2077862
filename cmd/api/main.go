package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/acuenca/tienda/internal/config"
	"github.com/acuenca/tienda/internal/database"
	tiendaHttp "github.com/acuenca/tienda/internal/http"
	productHandler "github.com/acuenca/tienda/internal/http/product"
	purchaseHandler "github.com/acuenca/tienda/internal/http/purchase"
	userHandler "github.com/acuenca/tienda/internal/http/user"
	"github.com/acuenca/tienda/internal/product"
	productStore "github.com/acuenca/tienda/internal/product/store"
	"github.com/acuenca/tienda/internal/purchase"
	purchaseStore "github.com/acuenca/tienda/internal/purchase/store"
	"github.com/acuenca/tienda/internal/user"
	userStore "github.com/acuenca/tienda/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("database connection established")

	var (
		purchaseService = purchase.NewService(purchaseStore.New(db))
		productService  = product.NewService(productStore.New(db))
		userService     = user.NewService(userStore.New(db))
	)

	var (
		purchaseH = purchaseHandler.NewHandler(purchaseService)
		productH  = productHandler.NewHandler(productService)
		userH     = userHandler.NewHandler(userService)
	)

	router := tiendaHttp.New(db, purchaseH, productH, userH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
