// Package orders resolves order status lookups. Lookups require both the
// order number and the purchase email; any mismatch or unknown order yields
// the same not-found answer.
package orders

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acewig/storefront/internal/catalog"
	"github.com/acewig/storefront/internal/storeapi"
	"github.com/acewig/storefront/pkg/enums"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

// Order is a normalized order status snapshot.
type Order struct {
	OrderNumber   string              `json:"orderNumber"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Items         []Item              `json:"items"`
}

// Item is one purchased line.
type Item struct {
	ProductName string          `json:"productName"`
	VariantName string          `json:"variantName,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type storefrontAPI interface {
	OrderStatus(ctx context.Context, orderNumber, email string) (*storeapi.Order, error)
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	API    storefrontAPI
	Logger *logger.Logger
}

// Service performs order tracking lookups.
type Service struct {
	api    storefrontAPI
	logger *logger.Logger
}

// NewService builds an orders service.
func NewService(params ServiceParams) (*Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront api is required")
	}
	return &Service{api: params.API, logger: params.Logger}, nil
}

// Track looks up one order by number and purchase email.
func (s *Service) Track(ctx context.Context, orderNumber, email string) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	email = strings.TrimSpace(email)
	if orderNumber == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number and email are required")
	}

	wire, err := s.api.OrderStatus(ctx, orderNumber, email)
	if err != nil {
		return nil, err
	}

	order := normalize(*wire)
	return &order, nil
}

func normalize(wire storeapi.Order) Order {
	items := make([]Item, 0, len(wire.Items))
	for _, item := range wire.Items {
		items = append(items, Item{
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			Price:       catalog.MajorUnits(item.Price),
		})
	}

	status, err := enums.ParseOrderStatus(wire.Status)
	if err != nil {
		status = enums.OrderStatusPending
	}
	payment, err := enums.ParsePaymentStatus(wire.PaymentStatus)
	if err != nil {
		payment = enums.PaymentStatusPending
	}

	return Order{
		OrderNumber:   wire.OrderNumber,
		Status:        status,
		PaymentStatus: payment,
		TotalAmount:   catalog.MajorUnits(wire.TotalAmount),
		CreatedAt:     time.UnixMilli(wire.CreatedAt),
		UpdatedAt:     time.UnixMilli(wire.UpdatedAt),
		Items:         items,
	}
}
