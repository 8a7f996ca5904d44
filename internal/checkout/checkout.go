// Package checkout converts a synced cart into an order. Customer details
// are validated locally before anything reaches the network.
package checkout

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/acewig/storefront/internal/storeapi"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

// CustomerInfo is the checkout form payload. Phone is optional.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=7"`
	Address string `json:"address" validate:"required"`
}

type storefrontAPI interface {
	Checkout(ctx context.Context, cartID string, info storeapi.CustomerInfo) (*storeapi.CheckoutResult, error)
}

type cartService interface {
	Refresh(ctx context.Context) error
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	API    storefrontAPI
	Cart   cartService
	Logger *logger.Logger
}

// Service validates and submits checkouts.
type Service struct {
	api      storefrontAPI
	cart     cartService
	logger   *logger.Logger
	validate *validator.Validate
}

// NewService builds a checkout service.
func NewService(params ServiceParams) (*Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront api is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		api:      params.API,
		cart:     params.Cart,
		logger:   params.Logger,
		validate: validate,
	}, nil
}

// Validate checks the customer form without touching the network. Failures
// carry a details map of field name to rejected rule.
func (s *Service) Validate(info CustomerInfo) error {
	err := s.validate.Struct(info)
	if err == nil {
		return nil
	}

	details := map[string]any{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid customer details").WithDetails(details)
}

// Process validates the form, submits the checkout, and refreshes the cart
// so the cleared server state replaces the local snapshot. Returns the new
// order id.
func (s *Service) Process(ctx context.Context, cartID string, info CustomerInfo) (string, error) {
	if cartID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	if err := s.Validate(info); err != nil {
		return "", err
	}

	result, err := s.api.Checkout(ctx, cartID, storeapi.CustomerInfo{
		Name:    info.Name,
		Email:   info.Email,
		Phone:   info.Phone,
		Address: info.Address,
	})
	if err != nil {
		return "", err
	}
	if !result.Success {
		return "", pkgerrors.New(pkgerrors.CodeUpstream, "checkout was not accepted")
	}

	// The server cleared the cart; resync the local snapshot. A failed
	// refresh does not undo the order.
	if err := s.cart.Refresh(ctx); err != nil && s.logger != nil {
		s.logger.Warn(s.logger.WithField(ctx, "order_id", result.OrderID), "cart refresh after checkout failed")
	}

	return result.OrderID, nil
}
