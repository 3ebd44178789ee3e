package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type ShippingController struct {
	shippingService service.ShippingService
}

func NewShippingController(shippingService service.ShippingService) *ShippingController {
	return &ShippingController{shippingService: shippingService}
}

// ListShippings returns the active shipping options
// GET /api/v1/shippings
func (ctrl *ShippingController) ListShippings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shippings, err := ctrl.shippingService.ListActive()
	if err != nil {
		log.Error("Failed to list shipping options", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list shippings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shippings": shippings,
	})
}
