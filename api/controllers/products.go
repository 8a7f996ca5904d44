package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/acewig/storefront/api/responses"
	"github.com/acewig/storefront/api/validators"
	"github.com/acewig/storefront/internal/catalog"
	"github.com/acewig/storefront/pkg/config"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

// ListProducts serves one page of the filtered product listing.
func ListProducts(svc *catalog.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", cfg.Catalog.PageSize, 1, cfg.Catalog.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		minPrice, err := validators.ParseQueryInt64(r, "minPrice", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryInt64(r, "maxPrice", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := catalog.Filters{
			Limit:        limit,
			MinPrice:     minPrice,
			MaxPrice:     maxPrice,
			InStockOnly:  r.URL.Query().Get("inStock") == "true",
			CategorySlug: strings.TrimSpace(r.URL.Query().Get("category")),
		}

		page, err := svc.ListProducts(r.Context(), filters, strings.TrimSpace(r.URL.Query().Get("cursor")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// SearchProducts serves bounded free-text search results.
func SearchProducts(svc *catalog.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			responses.WriteSuccess(w, []catalog.Product{})
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", cfg.Search.Limit, 1, cfg.Catalog.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results, err := svc.Search(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

// ProductDetail serves the full product record for one slug.
func ProductDetail(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required"))
			return
		}

		product, err := svc.ProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// RelatedProducts serves recommendations for one product.
func RelatedProducts(svc *catalog.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 4, 1, cfg.Catalog.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		related, err := svc.Related(r.Context(), slug, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, related)
	}
}
