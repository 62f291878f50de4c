package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/soldoshop/upn-nalog/internal/application/service"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint prints a sample slip.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	slip, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		if slip != nil {
			// Return the slip anyway (useful when printer type is "none")
			response.OK(c, "Test print completed (printer may be disabled)", gin.H{
				"slip":    slip,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Test slip sent to printer", gin.H{
		"slip": slip,
	})
}

// PrintSlip prints the payment slip of an order.
func (h *PrinterHandler) PrintSlip(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		response.BadRequest(c, "Invalid order number")
		return
	}

	slip, err := h.printerService.PrintOrderSlip(c.Request.Context(), number)
	if err != nil {
		// Slip was built but printing failed
		if slip != nil {
			response.OK(c, "Payment slip generated but printing failed", gin.H{
				"slip":    slip,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	log.Info().Str("order", number).Str("operator", GetOperator(c)).Msg("payment slip printed")
	response.OK(c, "Payment slip printed successfully", gin.H{
		"slip": slip,
	})
}
