// Command seed loads the default shop profile, catalog and admin account.
// It is safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"laundrybill/internal/config"
	"laundrybill/internal/database"
	"laundrybill/internal/repository"
	"laundrybill/internal/service"

	"github.com/shopspring/decimal"
)

var defaultItems = []service.ItemRequest{
	{ItemName: "Shirt", UnitPrice: decimal.NewFromInt(10)},
	{ItemName: "Pant", UnitPrice: decimal.NewFromInt(15)},
	{ItemName: "Saree", UnitPrice: decimal.NewFromInt(50)},
	{ItemName: "Blanket", UnitPrice: decimal.NewFromInt(100)},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Store.Driver != config.DriverPostgres {
		log.Fatalf("Seeding needs STORE_DRIVER=%s", config.DriverPostgres)
	}

	db, err := database.NewConnection(cfg.Database.DSN(), false)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := seed(context.Background(), repository.NewSet(db), cfg); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func seed(ctx context.Context, repos repository.Set, cfg *config.Config) error {
	shop := service.NewShopService(repos.Shop, repos.Audit, repos.TxManager, cfg.Shop.DefaultTaxRate)
	profile, err := shop.GetProfile(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		if err := shop.UpdateProfile(ctx, service.UpdateShopRequest{
			ShopName: "FreshWash",
			Tagline:  "Clean clothes, happy life",
			TaxRate:  decimal.RequireFromString("0.05"),
		}); err != nil {
			return err
		}
		log.Println("Shop profile created.")
	}

	items := service.NewItemService(repos.Items, repos.Audit, repos.TxManager)
	active, err := items.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		for _, req := range defaultItems {
			if _, err := items.CreateItem(ctx, req); err != nil {
				return err
			}
		}
		log.Printf("Added %d catalog items.", len(defaultItems))
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("SEED_ADMIN_PASSWORD not set; using the default admin password. Change it after first login.")
	}
	users := service.NewUserService(repos.Users, repos.Audit, 0)
	created, err := users.EnsureUser(ctx, "admin", password)
	if err != nil {
		return fmt.Errorf("ensure admin user: %w", err)
	}
	if created {
		log.Println("Admin user created.")
	}
	return nil
}
