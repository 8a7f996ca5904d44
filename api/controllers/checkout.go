package controllers

import (
	"net/http"

	"github.com/acewig/storefront/api/responses"
	"github.com/acewig/storefront/api/validators"
	cartsvc "github.com/acewig/storefront/internal/cart"
	checkoutsvc "github.com/acewig/storefront/internal/checkout"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

type checkoutRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address" validate:"required"`
}

// Checkout submits the session cart with the supplied customer details.
func Checkout(svc *checkoutsvc.Service, cart *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot := cart.Snapshot()
		if snapshot.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		orderID, err := svc.Process(r.Context(), snapshot.ID, checkoutsvc.CustomerInfo{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Address: payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orderId": orderID,
			"cart":    cart.Snapshot(),
		})
	}
}
