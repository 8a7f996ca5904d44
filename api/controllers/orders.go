package controllers

import (
	"net/http"
	"strings"

	"github.com/acewig/storefront/api/responses"
	ordersvc "github.com/acewig/storefront/internal/orders"
	"github.com/acewig/storefront/pkg/logger"
)

// OrderStatus looks up one order by number and purchase email. Unknown
// orders and wrong emails get the same not-found answer.
func OrderStatus(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber := strings.TrimSpace(r.URL.Query().Get("orderNumber"))
		email := strings.TrimSpace(r.URL.Query().Get("email"))

		order, err := svc.Track(r.Context(), orderNumber, email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
