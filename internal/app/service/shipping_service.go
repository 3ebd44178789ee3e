package service

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

type ShippingService interface {
	ListActive() ([]model.Shipping, error)
}

type shippingService struct {
	shippingRepo repository.ShippingRepository
}

func NewShippingService(shippingRepo repository.ShippingRepository) ShippingService {
	return &shippingService{shippingRepo: shippingRepo}
}

func (s *shippingService) ListActive() ([]model.Shipping, error) {
	shippings, err := s.shippingRepo.FindActive()
	if err != nil {
		logger.Error("Failed to list shipping options", err)
		return nil, err
	}
	return shippings, nil
}
