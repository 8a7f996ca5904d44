package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acewig/storefront/api/responses"
	"github.com/acewig/storefront/api/validators"
	"github.com/acewig/storefront/internal/catalog"
	"github.com/acewig/storefront/pkg/config"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

// ListCategories serves the flat category collection.
func ListCategories(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CategoryDetail serves one category by slug.
func CategoryDetail(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required"))
			return
		}

		category, err := svc.CategoryBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CategoryProducts serves the products under one category.
func CategoryProducts(svc *catalog.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", cfg.Catalog.PageSize, 1, cfg.Catalog.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.CategoryProducts(r.Context(), slug, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
