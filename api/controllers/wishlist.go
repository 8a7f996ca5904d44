package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acewig/storefront/api/responses"
	"github.com/acewig/storefront/api/validators"
	"github.com/acewig/storefront/internal/catalog"
	wishlistsvc "github.com/acewig/storefront/internal/wishlist"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

// WishlistGet serves the saved product snapshots.
func WishlistGet(list *wishlistsvc.List) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"items": list.Items(),
			"count": list.Count(),
		})
	}
}

// WishlistToggle flips membership for the product carried in the body. The
// caller supplies the full snapshot so saved items render offline.
func WishlistToggle(list *wishlistsvc.List, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product catalog.Product
		if err := validators.DecodeJSONBody(r, &product); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if product.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		saved := list.Toggle(r.Context(), product)
		responses.WriteSuccess(w, map[string]any{
			"productId": product.ID,
			"saved":     saved,
			"count":     list.Count(),
		})
	}
}

// WishlistRemove drops one product by id.
func WishlistRemove(list *wishlistsvc.List, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		list.Remove(r.Context(), productID)
		responses.WriteSuccess(w, map[string]any{
			"productId": productID,
			"saved":     false,
			"count":     list.Count(),
		})
	}
}
