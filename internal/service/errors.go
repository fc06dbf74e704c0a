package service

import (
	"errors"

	"github.com/nurpe/freelance-shield/internal/model"
)

var (
	ErrInvalidInput          = model.ErrInvalidInput
	ErrPermissionDenied      = errors.New("permission denied")
	ErrDeliveryNotConfigured = errors.New("delivery channel not configured")
	ErrDeliveryFailed        = errors.New("delivery failed")
)
