package main

import (
	"fmt"
	"log"

	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/pkg/util"
)

// Seeds a demo catalog, coupons and an admin account for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	couponRepo := repository.NewCouponRepository(db.GetDB())
	userRepo := repository.NewUserRepository(db.GetDB())

	if err := seedAdmin(userRepo); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	created, err := seedProducts(productRepo)
	if err != nil {
		log.Fatal("Failed to seed products:", err)
	}

	if err := seedCoupons(couponRepo); err != nil {
		log.Fatal("Failed to seed coupons:", err)
	}

	fmt.Printf("Seed completed: %d products created\n", created)
}

func seedAdmin(userRepo repository.UserRepository) error {
	if _, err := userRepo.FindByEmail("admin@storefront.local"); err == nil {
		fmt.Println("Admin user already exists, skipping")
		return nil
	}

	hash, err := util.HashPassword("admin1234")
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        "admin@storefront.local",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	fmt.Println("Admin user created: admin@storefront.local")
	return nil
}

func seedProducts(productRepo repository.ProductRepository) (int, error) {
	products := []model.Product{
		{
			Title:   "Red Shoes",
			Slug:    "red-shoes",
			Summary: "Lightweight running shoes with a breathable mesh upper.",
			Photo:   "/images/products/red-shoes.jpg",
			Price:   79.99,
			Stock:   50,
		},
		{
			Title:   "Blue Hat",
			Slug:    "blue-hat",
			Summary: "Classic cotton baseball cap with an adjustable strap.",
			Photo:   "/images/products/blue-hat.jpg",
			Price:   19.99,
			Stock:   120,
		},
		{
			Title:    "Canvas Backpack",
			Slug:     "canvas-backpack",
			Summary:  "Water-resistant canvas backpack with a padded laptop sleeve.",
			Photo:    "/images/products/canvas-backpack.jpg",
			Price:    59.99,
			Discount: 10.00,
			Stock:    35,
		},
		{
			Title:   "Wool Scarf",
			Slug:    "wool-scarf",
			Summary: "Soft merino wool scarf, available in one size.",
			Photo:   "/images/products/wool-scarf.jpg",
			Price:   24.50,
			Stock:   80,
		},
	}

	created := 0
	for i := range products {
		if _, err := productRepo.FindBySlug(products[i].Slug); err == nil {
			continue
		}
		if err := productRepo.Create(&products[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func seedCoupons(couponRepo repository.CouponRepository) error {
	coupons := []model.Coupon{
		{Code: "WELCOME10", Type: model.CouponTypePercent, Value: 10, Status: "active"},
		{Code: "SAVE5", Type: model.CouponTypeFixed, Value: 5, Status: "active"},
	}

	for i := range coupons {
		if _, err := couponRepo.FindActiveByCode(coupons[i].Code); err == nil {
			continue
		}
		if err := couponRepo.Create(&coupons[i]); err != nil {
			return err
		}
	}
	return nil
}
