// Package http provides http transport for footprint
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"footprint/internal/modkit/httpkit"
	"footprint/internal/services/api/footprint/domain"
	svc "footprint/internal/services/api/footprint/service"
)

// Register mounts footprint endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// full exposure scan for one email
	httpkit.PostJSON[domain.CheckInput](r, "/check", h.check)

	// remove all persisted summaries for a user
	httpkit.Delete(r, "/data/{user_id}", h.deleteData)
}

type handlers struct{ svc svc.Service }

func (h *handlers) check(r *stdhttp.Request, in domain.CheckInput) (any, error) {
	return h.svc.Check(r.Context(), in)
}

func (h *handlers) deleteData(r *stdhttp.Request) (any, error) {
	userID := chi.URLParam(r, "user_id")
	return h.svc.DeleteUserData(r.Context(), userID)
}
