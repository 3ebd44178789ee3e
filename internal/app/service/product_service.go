package service

import (
	"errors"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService interface {
	GetProducts() ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) GetProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch products", err)
		return nil, err
	}

	logger.Debug("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"title": product.Title,
	})

	if product.Price < 0 || product.Discount < 0 {
		return ErrInvalidPrice
	}

	if product.Slug == "" {
		product.Slug = slugify(product.Title)
	}
	if product.Status == "" {
		product.Status = model.ProductStatusActive
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"title": product.Title,
			"slug":  product.Slug,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

// UpdateProduct edits the live catalog record. Existing cart lines keep
// their captured snapshot and prices: a product edit is invisible to
// order history.
func (s *productService) UpdateProduct(product *model.Product) error {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
	})

	if product.Price < 0 || product.Discount < 0 {
		return ErrInvalidPrice
	}

	if _, err := s.productRepo.FindByID(product.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// DeleteProduct removes the catalog row. Referential integrity for order
// history is the schema's job: the carts foreign key is declared ON DELETE
// SET NULL, so line items survive with product_id cleared even when a
// delete bypasses this service entirely.
func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
