package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/controller"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	cartController     *controller.CartController
	orderController    *controller.OrderController
	shippingController *controller.ShippingController
	couponController   *controller.CouponController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	shippingController *controller.ShippingController,
	couponController *controller.CouponController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		cartController:     cartController,
		orderController:    orderController,
		shippingController: shippingController,
		couponController:   couponController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Storefront API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:slug", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveCartItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.ListOrders)
			orders.POST("", r.orderController.Checkout)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.GET("/:id/detail", r.orderController.GetOrderDetail)

			orders.PUT("/:id/payment", r.orderController.UpdatePaymentStatus)

			orders.PUT("/:id/status",
				r.authMiddleware.RequireRole("admin"),
				r.orderController.UpdateOrderStatus,
			)
			orders.DELETE("/:id",
				r.authMiddleware.RequireRole("admin"),
				r.orderController.DeleteOrder,
			)
		}

		v1.GET("/shippings", r.shippingController.ListShippings)
		v1.POST("/coupons/validate", r.authMiddleware.Authenticate(), r.couponController.ValidateCoupon)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
