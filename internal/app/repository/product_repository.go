package repository

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title": product.Title,
		"slug":  product.Slug,
		"price": product.Price,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title": product.Title,
			"slug":  product.Slug,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("status = ?", model.ProductStatusActive).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to list products in database", err)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// Delete removes the product row outright. The carts table's ON DELETE
// SET NULL policy then clears product_id on every line item referencing
// it, leaving the lines themselves untouched.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	result := r.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product from database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
