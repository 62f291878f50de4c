package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/soldoshop/upn-nalog/internal/config"
	"github.com/soldoshop/upn-nalog/internal/domain/entity"
	"github.com/soldoshop/upn-nalog/internal/domain/enum"
	"github.com/soldoshop/upn-nalog/internal/domain/repository"
	"github.com/soldoshop/upn-nalog/pkg/apperror"
	"github.com/soldoshop/upn-nalog/pkg/slippdf"
	"github.com/soldoshop/upn-nalog/pkg/upn"
)

// SlipTitle heads printed and PDF slips.
const SlipTitle = "UPN Nalog"

// Render channels
const (
	ChannelPage  = "page"
	ChannelEmail = "email"
)

// SlipRenderer turns a payment slip into a PNG image.
type SlipRenderer interface {
	Render(ctx context.Context, slip upn.PaymentSlip) ([]byte, error)
}

// AccountFilter narrows or reorders the configured accounts for one order
// before the first account is taken as the receiver.
type AccountFilter func(ctx context.Context, order *entity.Order, accounts []entity.BankAccount) []entity.BankAccount

// RenderContext describes where a slip is going to be shown.
type RenderContext struct {
	Channel   string // ChannelPage or ChannelEmail
	ToAdmin   bool   // email copy sent to the shop admin
	Overrides upn.Overrides
}

// SlipServiceConfig holds the store-wide slip settings.
type SlipServiceConfig struct {
	Store        config.StoreConfig
	Defaults     upn.Overrides
	Locale       string
	Instructions string
}

// SlipService composes UPN payment slips for store orders.
type SlipService struct {
	orderRepo   repository.OrderRepository
	accountRepo repository.AccountRepository
	renderer    SlipRenderer
	builder     *upn.Builder
	cfg         SlipServiceConfig
	location    *time.Location
	filters     []AccountFilter
}

// NewSlipService creates a new slip service
func NewSlipService(
	orderRepo repository.OrderRepository,
	accountRepo repository.AccountRepository,
	renderer SlipRenderer,
	cfg SlipServiceConfig,
	filters ...AccountFilter,
) *SlipService {
	return &SlipService{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		renderer:    renderer,
		builder:     upn.NewBuilder(cfg.Defaults),
		cfg:         cfg,
		location:    cfg.Store.Location(),
		filters:     filters,
	}
}

// EmailEligible reports whether an order email carries the slip: only the
// customer copy of a bank transfer order that is on hold.
func EmailEligible(order *entity.Order, toAdmin bool) bool {
	return !toAdmin &&
		order.PaymentMethod == enum.PaymentMethodBACS &&
		order.Status == enum.OrderStatusOnHold
}

// GetSlip builds the slip view for an order. A missing bank account or an
// ineligible email yields an unavailable view rather than an error; a render
// failure keeps the description rows and drops the image.
func (s *SlipService) GetSlip(ctx context.Context, number string, rc RenderContext) (*entity.SlipView, error) {
	order, err := s.loadOrder(ctx, number)
	if err != nil {
		return nil, err
	}

	view := &entity.SlipView{
		OrderNumber:  order.Number,
		Instructions: s.cfg.Instructions,
	}

	if rc.Channel == ChannelEmail && !EmailEligible(order, rc.ToAdmin) {
		view.Reason = entity.SlipReasonNotApplicable
		return view, nil
	}

	slip, err := s.buildSlip(ctx, order, rc.Overrides)
	if errors.Is(err, upn.ErrMissingAccount) {
		log.Info().Str("order", order.Number).Msg("no bank account configured, omitting payment slip")
		view.Reason = entity.SlipReasonNoAccount
		return view, nil
	}
	if err != nil {
		return nil, apperror.FromSlipError(err)
	}

	view.Available = true
	view.Slip = &slip
	view.Amount = slip.AmountDecimal()
	view.Rows = upn.Describe(slip, s.cfg.Locale)

	img, err := s.renderer.Render(ctx, slip)
	if err != nil {
		log.Warn().Err(err).Str("order", order.Number).Msg("payment slip image unavailable")
		view.Warning = apperror.GetAppError(apperror.FromSlipError(err)).Message
		return view, nil
	}
	view.Image = img
	view.ImageSrc = "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)

	return view, nil
}

// RenderPNG returns only the QR image of an order's slip.
func (s *SlipService) RenderPNG(ctx context.Context, number string, overrides upn.Overrides) ([]byte, error) {
	order, err := s.loadOrder(ctx, number)
	if err != nil {
		return nil, err
	}

	slip, err := s.buildSlip(ctx, order, overrides)
	if err != nil {
		return nil, apperror.FromSlipError(err)
	}

	img, err := s.renderer.Render(ctx, slip)
	if err != nil {
		log.Warn().Err(err).Str("order", order.Number).Msg("payment slip image unavailable")
		return nil, apperror.FromSlipError(err)
	}
	return img, nil
}

// WritePDF writes the order's slip as a PDF page. The QR image is left out
// when it cannot be rendered.
func (s *SlipService) WritePDF(ctx context.Context, number string, rc RenderContext, w io.Writer) error {
	view, err := s.GetSlip(ctx, number, rc)
	if err != nil {
		return err
	}
	if !view.Available {
		if view.Reason == entity.SlipReasonNoAccount {
			return apperror.ErrNoAccount
		}
		return apperror.ErrSlipUnavailable
	}

	return slippdf.Write(w, slippdf.Document{
		Title:        SlipTitle,
		Locale:       s.cfg.Locale,
		Instructions: view.Instructions,
		Rows:         view.Rows,
		Amount:       view.Amount,
		DueDate:      view.Slip.DueDate.Format("02.01.2006"),
		QR:           view.Image,
	})
}

// AccountListing is a configured account and whether slips use it.
type AccountListing struct {
	entity.BankAccount
	Selected bool `json:"selected"`
}

// ListAccounts returns the configured accounts with the default receiver
// (the first one) marked as selected.
func (s *SlipService) ListAccounts(ctx context.Context) ([]AccountListing, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AccountListing, 0, len(accounts))
	for i, a := range accounts {
		out = append(out, AccountListing{BankAccount: a, Selected: i == 0 && a.IBAN != ""})
	}
	return out, nil
}

func (s *SlipService) loadOrder(ctx context.Context, number string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

func (s *SlipService) buildSlip(ctx context.Context, order *entity.Order, overrides upn.Overrides) (upn.PaymentSlip, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return upn.PaymentSlip{}, err
	}
	for _, filter := range s.filters {
		accounts = filter(ctx, order, accounts)
	}

	merchant := upn.Merchant{
		Accounts: entity.SlipAccounts(accounts),
		Address:  s.cfg.Store.Address,
		City:     s.cfg.Store.City,
		Postcode: s.cfg.Store.Postcode,
	}
	// The due date is the order's calendar day in the store's zone.
	so := order.SlipOrder()
	if s.location != nil {
		so.CreatedAt = so.CreatedAt.In(s.location)
	}
	return s.builder.Build(so, merchant, overrides)
}
