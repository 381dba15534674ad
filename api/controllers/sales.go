package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopfloor/api/responses"
	"github.com/angelmondragon/shopfloor/api/validators"
	"github.com/angelmondragon/shopfloor/internal/sales"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/angelmondragon/shopfloor/pkg/logger"
	"github.com/angelmondragon/shopfloor/pkg/pagination"
)

const maxNameFilterLen = 200

// SalesRecord records a sale and decrements the matching stock row.
func SalesRecord(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		var body sales.RecordSaleInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.RecordSale(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// SalesList serves the filtered sales report.
func SalesList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		from, err := validators.ParseQueryDate(r, "from", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.ListSales(r.Context(), sales.ListSalesInput{
			Name: validators.SanitizeString(r.URL.Query().Get("name"), maxNameFilterLen),
			From: from,
			To:   to,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
