package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/soldoshop/upn-nalog/internal/domain/entity"
	"github.com/soldoshop/upn-nalog/pkg/apperror"
	"github.com/soldoshop/upn-nalog/pkg/printer"
	"github.com/soldoshop/upn-nalog/pkg/upn"
)

// qrModuleSize is the printed QR dot size; 4 fits a version 15 symbol on 58mm paper.
const qrModuleSize = 4

// PrinterService prints payment slips on a thermal printer.
type PrinterService struct {
	printer     printer.Printer
	slips       *SlipService
	printerType string
	charWidth   int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, slips *SlipService, printerType string, charWidth int) *PrinterService {
	return &PrinterService{
		printer:     p,
		slips:       slips,
		printerType: printerType,
		charWidth:   charWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// TestPrint prints a slip for a sample order so the QR and layout can be
// checked on paper. The slip is returned even when printing fails.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.SlipView, error) {
	order := upn.Order{
		Number:           "TEST-001",
		BillingFirstName: "Janez",
		BillingLastName:  "Novak",
		BillingAddress:   "Slovenska cesta 1",
		BillingPostcode:  "1000",
		BillingCity:      "Ljubljana",
		Total:            1000,
		CreatedAt:        time.Now(),
	}
	merchant := upn.Merchant{
		Accounts: []upn.Account{{Name: "PRINTER TEST", IBAN: "SI56 0000 0000 0000 000"}},
		Address:  "Test Address 1",
		City:     "Ljubljana",
		Postcode: "1000",
	}

	slip, err := s.slips.builder.Build(order, merchant, upn.Overrides{})
	if err != nil {
		return nil, apperror.FromSlipError(err)
	}
	view := &entity.SlipView{
		OrderNumber: order.Number,
		Available:   true,
		Slip:        &slip,
		Amount:      slip.AmountDecimal(),
		Rows:        upn.Describe(slip, s.slips.cfg.Locale),
	}

	data, err := FormatSlip(view, s.slips.cfg.Locale, s.charWidth)
	if err != nil {
		return view, err
	}
	if err := s.printer.Print(ctx, data); err != nil {
		return view, fmt.Errorf("test print failed: %w", err)
	}
	return view, nil
}

// PrintOrderSlip builds an order's slip and prints it. When only the printer
// fails, the built slip is returned with the error.
func (s *PrinterService) PrintOrderSlip(ctx context.Context, number string) (*entity.SlipView, error) {
	order, err := s.slips.loadOrder(ctx, number)
	if err != nil {
		return nil, err
	}
	slip, err := s.slips.buildSlip(ctx, order, upn.Overrides{})
	if err != nil {
		return nil, apperror.FromSlipError(err)
	}
	view := &entity.SlipView{
		OrderNumber:  order.Number,
		Available:    true,
		Instructions: s.slips.cfg.Instructions,
		Slip:         &slip,
		Amount:       slip.AmountDecimal(),
		Rows:         upn.Describe(slip, s.slips.cfg.Locale),
	}

	data, err := FormatSlip(view, s.slips.cfg.Locale, s.charWidth)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, data); err != nil {
		log.Error().Err(err).Str("order", number).Msg("printer error")
		return view, fmt.Errorf("failed to print payment slip: %w", err)
	}
	return view, nil
}

// FormatSlip converts a slip view into ESC/POS bytes with the QR symbol
// drawn by the printer.
func FormatSlip(view *entity.SlipView, locale string, charWidth int) ([]byte, error) {
	if view.Slip == nil {
		return nil, apperror.ErrSlipUnavailable
	}
	payload, err := upn.EncodeQRText(*view.Slip)
	if err != nil {
		return nil, apperror.FromSlipError(&upn.RenderError{Err: err})
	}

	labels := upn.LabelsFor(locale)
	doc := printer.NewDocument(charWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(SlipTitle).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	for _, row := range view.Rows {
		doc.SetBold(true).Text(row.Label).SetBold(false)
		for _, line := range row.Lines {
			doc.Wrapped("  ", line)
		}
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue(labels.Amount+":", view.Amount+" EUR").
		SetBold(false).
		KeyValue(labels.DueDate+":", view.Slip.DueDate.Format("02.01.2006")).
		Separator('-').
		SetAlign(printer.AlignCenter)

	if _, err := doc.QRCode(payload, qrModuleSize, printer.QRCorrectionM); err != nil {
		return nil, err
	}

	doc.LineFeed().
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes(), nil
}
