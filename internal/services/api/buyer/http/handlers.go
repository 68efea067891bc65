// Package http provides http and websocket transport for the buyer flow
package http

import (
	stdhttp "net/http"

	"paysplit/internal/modkit/httpkit"
	"paysplit/internal/services/api/buyer/domain"
)

// Register mounts buyer endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// decode pasted or uploaded payload text
	httpkit.PostJSON[domain.DecodeInput](r, "/decode", h.decode)

	// live camera scanning over a websocket
	r.Get("/scan", newScanHandler(s).ServeHTTP)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /buyer/decode Buyer buyerDecode
// @Summary Decode a payment payload
// @Tags Buyer
// @Accept json
// @Produce json
// @Param payload body domain.DecodeInput true "Payload text and quantity"
// @Success 200 {object} domain.DecodeOutput "ok"
// @Router /buyer/decode [post]
func (h *handlers) decode(r *stdhttp.Request, in domain.DecodeInput) (any, error) {
	return h.svc.Decode(r.Context(), in)
}
