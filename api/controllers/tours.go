package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/voyacore/tourbook-backend/api/responses"
	"github.com/voyacore/tourbook-backend/internal/tours"
	"github.com/voyacore/tourbook-backend/pkg/db/types"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
	"github.com/voyacore/tourbook-backend/pkg/logger"
)

type tourResponse struct {
	ID      uuid.UUID            `json:"id"`
	Title   string               `json:"title"`
	Slug    string               `json:"slug"`
	Options types.BookingOptions `json:"options"`
}

type tourListResponse struct {
	Tours []tourResponse `json:"tours"`
}

// TourList returns the tenant's bookable catalog.
func TourList(repo *tours.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tour repository unavailable"))
			return
		}

		tenantID, err := resolveTenant(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := repo.ListForTenant(ctx, tenantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tours"))
			return
		}
		resp := tourListResponse{Tours: make([]tourResponse, 0, len(items))}
		for _, item := range items {
			resp.Tours = append(resp.Tours, tourResponse{
				ID:      item.ID,
				Title:   item.Title,
				Slug:    item.Slug,
				Options: item.Options,
			})
		}
		responses.WriteSuccess(w, resp)
	}
}
