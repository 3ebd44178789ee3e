package db

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

// Migrate runs database migrations. Ordering matters: products before
// carts so the carts foreign key (ON DELETE SET NULL) can be created.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.Shipping{},
		&model.Coupon{},
		&model.Order{},
		&model.Cart{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedShippings(); err != nil {
		logger.Error("Failed to seed shipping options", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedShippings creates the default checkout shipping options.
func seedShippings() error {
	var count int64
	if err := DB.Model(&model.Shipping{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Shipping options already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	shippings := []model.Shipping{
		{Type: "Standard Shipping", Price: 5.00, Status: "active"},
		{Type: "Express Shipping", Price: 15.00, Status: "active"},
		{Type: "Free Shipping", Price: 0.00, Status: "active"},
	}

	for _, shipping := range shippings {
		if err := DB.Create(&shipping).Error; err != nil {
			logger.Error("Failed to create shipping option", err, map[string]interface{}{
				"type": shipping.Type,
			})
			return err
		}
	}

	logger.Info("Shipping options seeded successfully", map[string]interface{}{
		"total": len(shippings),
	})
	return nil
}
