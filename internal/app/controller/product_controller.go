package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Slug        string  `json:"slug"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	Photo       string  `json:"photo"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Discount    float64 `json:"discount" binding:"gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Photo       string   `json:"photo"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
	Stock       *int     `json:"stock"`
	Status      string   `json:"status"`
}

// ListProducts returns the active catalog
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.GetProducts()
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single product by slug
// GET /api/v1/products/:slug
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	product, err := ctrl.productService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get product", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct adds a catalog entry (admin)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product details")
		return
	}

	product := &model.Product{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Description: req.Description,
		Photo:       req.Photo,
		Price:       req.Price,
		Discount:    req.Discount,
		Stock:       req.Stock,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Price and discount must not be negative")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct edits a catalog entry (admin). Cart lines created before
// the edit keep their snapshot and captured prices.
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product details")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	if req.Title != "" {
		product.Title = req.Title
	}
	if req.Summary != "" {
		product.Summary = req.Summary
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Photo != "" {
		product.Photo = req.Photo
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Status != "" {
		product.Status = model.ProductStatus(req.Status)
	}

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Price and discount must not be negative")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a catalog entry (admin). Existing cart and order
// lines survive the delete: the database clears their product reference and
// display falls back to the captured snapshot.
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}
