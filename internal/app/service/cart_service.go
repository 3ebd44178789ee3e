package service

import (
	"errors"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type CartService interface {
	GetUserCart(userID uint) ([]model.Cart, error)
	AddToCart(userID, productID uint, quantity int) (*model.Cart, error)
	UpdateQuantity(userID, cartID uint, quantity int) error
	RemoveFromCart(userID, cartID uint) error
	ClearCart(userID uint) error
	AttachToOrder(cartID, orderID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.Cart, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	carts, err := s.cartRepo.FindInCartByUser(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(carts),
	})
	return carts, nil
}

// AddToCart creates a line item for the product. Unit price and line
// amount are captured here, and the product's display fields are copied
// onto the line as a snapshot. None of these are ever recomputed from the
// live product afterwards.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*model.Cart, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		logger.Warn("Cannot add to cart: invalid quantity", map[string]interface{}{
			"user_id":  userID,
			"quantity": quantity,
		})
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	// A negative list price can only come from an out-of-band write;
	// refuse to capture it into a line item.
	if product.Price < 0 {
		logger.Warn("Cannot add to cart: negative product price", map[string]interface{}{
			"product_id": productID,
			"price":      product.Price,
		})
		return nil, ErrInvalidPrice
	}
	unitPrice := product.EffectivePrice()

	existing, err := s.cartRepo.FindInCartByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart line", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	requestedQuantity := quantity
	if existing != nil {
		requestedQuantity = existing.Quantity + quantity
	}

	if product.Stock < requestedQuantity {
		logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"requested":  requestedQuantity,
			"available":  product.Stock,
		})
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		// Merge into the existing line. The amount is recomputed from the
		// price captured when the line was first created, not the current
		// product price.
		existing.Quantity = requestedQuantity
		existing.Amount = existing.Price * float64(requestedQuantity)
		if err := s.cartRepo.Update(existing); err != nil {
			logger.Error("Failed to update cart line", err, map[string]interface{}{
				"cart_id": existing.ID,
			})
			return nil, err
		}
		return existing, nil
	}

	snapshot := product.Snapshot()
	cart := &model.Cart{
		UserID:         userID,
		ProductID:      &productID,
		Quantity:       quantity,
		Price:          unitPrice,
		Amount:         unitPrice * float64(quantity),
		Status:         model.CartStatusNew,
		ProductTitle:   snapshot.Title,
		ProductPhoto:   snapshot.Photo,
		ProductSummary: snapshot.Summary,
	}

	if err := s.cartRepo.Create(cart); err != nil {
		logger.Error("Failed to create cart line", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Product added to cart successfully", map[string]interface{}{
		"cart_id": cart.ID,
		"amount":  cart.Amount,
	})
	return cart, nil
}

func (s *cartService) UpdateQuantity(userID, cartID uint, quantity int) error {
	logger.Info("Updating cart line quantity", map[string]interface{}{
		"user_id":  userID,
		"cart_id":  cartID,
		"quantity": quantity,
	})

	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart line", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	if cart.UserID != userID || cart.Status != model.CartStatusNew {
		logger.Warn("Cart line access denied", map[string]interface{}{
			"user_id":  userID,
			"cart_id":  cartID,
			"owner_id": cart.UserID,
			"status":   cart.Status,
		})
		return ErrCartItemNotFound
	}

	if cart.Product != nil && cart.Product.Stock < quantity {
		logger.Warn("Cannot update cart line: insufficient stock", map[string]interface{}{
			"cart_id":   cartID,
			"requested": quantity,
			"available": cart.Product.Stock,
		})
		return ErrInsufficientStock
	}

	// Amount follows the captured price, never the live one.
	cart.Quantity = quantity
	cart.Amount = cart.Price * float64(quantity)
	if err := s.cartRepo.Update(cart); err != nil {
		logger.Error("Failed to update cart line", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Info("Cart line updated successfully", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

func (s *cartService) RemoveFromCart(userID, cartID uint) error {
	logger.Info("Removing cart line", map[string]interface{}{
		"user_id": userID,
		"cart_id": cartID,
	})

	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart line for removal", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	if cart.UserID != userID || cart.Status != model.CartStatusNew {
		return ErrCartItemNotFound
	}

	if err := s.cartRepo.Delete(cartID); err != nil {
		logger.Error("Failed to delete cart line", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Info("Cart line removed", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.cartRepo.ClearInCartByUser(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// AttachToOrder links an existing line item to an order. Used directly by
// admin tooling; checkout attaches lines inside its own transaction.
func (s *cartService) AttachToOrder(cartID, orderID uint) error {
	logger.Info("Attaching cart line to order", map[string]interface{}{
		"cart_id":  cartID,
		"order_id": orderID,
	})

	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if err := s.cartRepo.AttachToOrder(cartID, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		logger.Error("Failed to attach cart line to order", err, map[string]interface{}{
			"cart_id":  cartID,
			"order_id": orderID,
		})
		return err
	}
	return nil
}
