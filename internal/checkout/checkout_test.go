package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/acewig/storefront/internal/storeapi"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
)

type stubAPI struct {
	result *storeapi.CheckoutResult
	err    error
	calls  int
	lastID string
}

func (s *stubAPI) Checkout(ctx context.Context, cartID string, info storeapi.CustomerInfo) (*storeapi.CheckoutResult, error) {
	s.calls++
	s.lastID = cartID
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubCart struct {
	refreshes  int
	refreshErr error
}

func (s *stubCart) Refresh(ctx context.Context) error {
	s.refreshes++
	return s.refreshErr
}

func validInfo() CustomerInfo {
	return CustomerInfo{
		Name:    "Abena Mensah",
		Email:   "abena@example.com",
		Phone:   "0244000000",
		Address: "12 Oxford St, Osu, Accra",
	}
}

func newTestService(t *testing.T, api *stubAPI, cart *stubCart) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{API: api, Cart: cart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	svc := newTestService(t, &stubAPI{}, &stubCart{})
	if err := svc.Validate(validInfo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePhoneOptional(t *testing.T) {
	svc := newTestService(t, &stubAPI{}, &stubCart{})
	info := validInfo()
	info.Phone = ""
	if err := svc.Validate(info); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	svc := newTestService(t, &stubAPI{}, &stubCart{})

	err := svc.Validate(CustomerInfo{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}

	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	for _, field := range []string{"name", "email", "address"} {
		if _, present := details[field]; !present {
			t.Fatalf("expected field %q in details %v", field, details)
		}
	}
}

func TestProcessValidationFailureSkipsNetwork(t *testing.T) {
	api := &stubAPI{}
	cart := &stubCart{}
	svc := newTestService(t, api, cart)

	if _, err := svc.Process(context.Background(), "cart-1", CustomerInfo{}); err == nil {
		t.Fatal("expected validation error")
	}
	if api.calls != 0 {
		t.Fatalf("expected no checkout call, got %d", api.calls)
	}
	if cart.refreshes != 0 {
		t.Fatalf("expected no cart refresh, got %d", cart.refreshes)
	}
}

func TestProcessRequiresCartID(t *testing.T) {
	api := &stubAPI{}
	svc := newTestService(t, api, &stubCart{})
	if _, err := svc.Process(context.Background(), "", validInfo()); err == nil {
		t.Fatal("expected error for missing cart id")
	}
	if api.calls != 0 {
		t.Fatal("expected no checkout call")
	}
}

func TestProcessSuccessRefreshesCart(t *testing.T) {
	api := &stubAPI{result: &storeapi.CheckoutResult{Success: true, OrderID: "ord-42"}}
	cart := &stubCart{}
	svc := newTestService(t, api, cart)

	orderID, err := svc.Process(context.Background(), "cart-1", validInfo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "ord-42" {
		t.Fatalf("unexpected order id %q", orderID)
	}
	if api.lastID != "cart-1" {
		t.Fatalf("unexpected cart id %q", api.lastID)
	}
	if cart.refreshes != 1 {
		t.Fatalf("expected one cart refresh, got %d", cart.refreshes)
	}
}

func TestProcessUpstreamRejection(t *testing.T) {
	api := &stubAPI{result: &storeapi.CheckoutResult{Success: false}}
	cart := &stubCart{}
	svc := newTestService(t, api, cart)

	if _, err := svc.Process(context.Background(), "cart-1", validInfo()); err == nil {
		t.Fatal("expected error for rejected checkout")
	}
	if cart.refreshes != 0 {
		t.Fatal("expected no cart refresh after rejection")
	}
}

func TestProcessRefreshFailureStillReturnsOrder(t *testing.T) {
	api := &stubAPI{result: &storeapi.CheckoutResult{Success: true, OrderID: "ord-7"}}
	cart := &stubCart{refreshErr: fmt.Errorf("upstream down")}
	svc := newTestService(t, api, cart)

	orderID, err := svc.Process(context.Background(), "cart-1", validInfo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "ord-7" {
		t.Fatalf("unexpected order id %q", orderID)
	}
}
