// Package http provides http transport for the seller flow
package http

import (
	stdhttp "net/http"

	"paysplit/internal/modkit/httpkit"
	perr "paysplit/internal/platform/errors"
	"paysplit/internal/services/api/seller/domain"
)

// maxUploadBytes bounds the multipart body; the image gate itself is applied by the service
const maxUploadBytes = 4 << 20

// Register mounts seller endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// live split preview
	httpkit.PostJSON[domain.QuoteInput](r, "/quote", h.quote)

	// payload text and display fields
	httpkit.PostJSON[domain.GenerateInput](r, "/generate", h.generate)

	// payload as a PNG
	httpkit.PostJSON[domain.QRInput](r, "/qr", h.qr)

	// product image upload
	httpkit.Post(r, "/image", h.image)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /seller/quote Seller sellerQuote
// @Summary Preview a price split
// @Tags Seller
// @Accept json
// @Produce json
// @Param payload body domain.QuoteInput true "Amounts"
// @Success 200 {object} split.Split "ok"
// @Router /seller/quote [post]
func (h *handlers) quote(r *stdhttp.Request, in domain.QuoteInput) (any, error) {
	return h.svc.Quote(r.Context(), in)
}

// swagger:route POST /seller/generate Seller sellerGenerate
// @Summary Generate a payment payload
// @Tags Seller
// @Accept json
// @Produce json
// @Param payload body domain.GenerateInput true "Product and amounts"
// @Success 200 {object} domain.GenerateOutput "ok"
// @Router /seller/generate [post]
func (h *handlers) generate(r *stdhttp.Request, in domain.GenerateInput) (any, error) {
	return h.svc.Generate(r.Context(), in)
}

// swagger:route POST /seller/qr Seller sellerQR
// @Summary Render a payload as a QR code
// @Tags Seller
// @Accept json
// @Produce png
// @Param payload body domain.QRInput true "Payload"
// @Success 200 {file} binary "PNG image"
// @Router /seller/qr [post]
func (h *handlers) qr(r *stdhttp.Request, in domain.QRInput) (any, error) {
	png, err := h.svc.QR(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Blob("image/png", png), nil
}

// swagger:route POST /seller/image Seller sellerImage
// @Summary Upload a product image
// @Tags Seller
// @Accept mpfd
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} domain.ImageOutput "ok"
// @Router /seller/image [post]
func (h *handlers) image(r *stdhttp.Request) (any, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidInput, "expected a multipart form with an image file"), "image")
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	f, _, err := r.FormFile("image")
	if err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidInput, "image file is required"), "image")
	}
	defer func() { _ = f.Close() }()

	return h.svc.Image(r.Context(), f)
}
