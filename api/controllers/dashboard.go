package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopfloor/api/responses"
	"github.com/angelmondragon/shopfloor/internal/dashboard"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/angelmondragon/shopfloor/pkg/logger"
)

func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
