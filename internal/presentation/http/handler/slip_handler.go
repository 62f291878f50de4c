package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soldoshop/upn-nalog/internal/application/service"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/dto/response"
)

// SlipHandler serves UPN payment slips for orders.
type SlipHandler struct {
	slipService *service.SlipService
}

// NewSlipHandler creates a new slip handler
func NewSlipHandler(slipService *service.SlipService) *SlipHandler {
	return &SlipHandler{slipService: slipService}
}

// GetSlip returns the slip view of an order
// @Summary Get payment slip
// @Description Build the UPN payment slip, its description rows and QR image for an order
// @Tags slips
// @Produce json
// @Param number path string true "Order number"
// @Param context query string false "page or email"
// @Param audience query string false "customer or admin"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /orders/{number}/upn [get]
func (h *SlipHandler) GetSlip(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		response.BadRequest(c, "Invalid order number")
		return
	}
	q, ok := bindSlipQuery(c)
	if !ok {
		return
	}

	view, err := h.slipService.GetSlip(c.Request.Context(), number, renderContext(q))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Payment slip retrieved"
	if !view.Available {
		message = "Payment slip not available"
	}
	response.OK(c, message, view)
}

// GetQR returns the slip QR code as PNG
func (h *SlipHandler) GetQR(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		response.BadRequest(c, "Invalid order number")
		return
	}
	q, ok := bindSlipQuery(c)
	if !ok {
		return
	}

	img, err := h.slipService.RenderPNG(c.Request.Context(), number, q.Overrides())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", img)
}

// GetPDF returns the slip as a PDF page
func (h *SlipHandler) GetPDF(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		response.BadRequest(c, "Invalid order number")
		return
	}
	q, ok := bindSlipQuery(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.slipService.WritePDF(c.Request.Context(), number, renderContext(q), &buf); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "upn-"+number+".pdf"))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// ListAccounts returns the configured bank accounts
func (h *SlipHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.slipService.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Accounts retrieved", accounts)
}
