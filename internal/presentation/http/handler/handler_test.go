package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/soldoshop/upn-nalog/internal/application/service"
	"github.com/soldoshop/upn-nalog/internal/config"
	"github.com/soldoshop/upn-nalog/internal/domain/entity"
	"github.com/soldoshop/upn-nalog/internal/domain/enum"
	"github.com/soldoshop/upn-nalog/pkg/apperror"
	"github.com/soldoshop/upn-nalog/pkg/printer"
	"github.com/soldoshop/upn-nalog/pkg/upn"
	"github.com/soldoshop/upn-nalog/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type orderRepo map[string]*entity.Order

func (r orderRepo) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	return r[number], nil
}

type accountRepo []entity.BankAccount

func (r accountRepo) List(ctx context.Context) ([]entity.BankAccount, error) {
	return r, nil
}

type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(ctx context.Context, slip upn.PaymentSlip) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png:" + slip.Reference), nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func testRouter(t *testing.T, accounts accountRepo, r stubRenderer) *gin.Engine {
	t.Helper()
	orders := orderRepo{
		"1042": {
			ID:               uuid.New(),
			Number:           "1042",
			PaymentMethod:    enum.PaymentMethodBACS,
			Status:           enum.OrderStatusOnHold,
			BillingFirstName: "Ana",
			BillingLastName:  "Novak",
			BillingAddress1:  "Slovenska cesta 1",
			BillingPostcode:  "1000",
			BillingCity:      "Ljubljana",
			Total:            12350,
			CreatedAt:        time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
		},
	}
	slips := service.NewSlipService(orders, accounts, r, service.SlipServiceConfig{
		Store:    config.StoreConfig{Address: "Trg republike 3", City: "Ljubljana", Postcode: "1000"},
		Defaults: upn.LocaleDefaults("sl-SI"),
		Locale:   "sl-SI",
	})
	printers := service.NewPrinterService(printer.NewNullPrinter(), slips, "none", 32)

	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	auth := service.NewAuthService(config.OperatorConfig{Username: "admin", PasswordHash: hash}, utils.NewJWTManager("test", time.Hour))

	router := gin.New()
	slipHandler := NewSlipHandler(slips)
	printerHandler := NewPrinterHandler(printers)
	router.POST("/auth/token", NewAuthHandler(auth).Token)
	router.GET("/orders/:number/upn", slipHandler.GetSlip)
	router.GET("/orders/:number/upn/qr.png", slipHandler.GetQR)
	router.GET("/orders/:number/upn/slip.pdf", slipHandler.GetPDF)
	router.POST("/orders/:number/upn/print", printerHandler.PrintSlip)
	router.GET("/accounts", slipHandler.ListAccounts)
	router.GET("/printer/status", printerHandler.GetStatus)
	return router
}

func defaultAccounts() accountRepo {
	return accountRepo{{ID: uuid.New(), AccountName: "Soldo d.o.o.", IBAN: "SI56 0201 0001 2345 678"}}
}

func do(router http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGetSlipHandler(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodGet, "/orders/1042/upn", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.True(t, env.Success)
	var view entity.SlipView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.True(t, view.Available)
	assert.Equal(t, "123.50", view.Amount)
	assert.Equal(t, "Plačilo naročila 1042", view.Slip.Purpose)
	assert.Equal(t, "Ime, ulica in kraj prejemnika", view.Rows[0].Label)
	assert.Equal(t, "data:image/png;base64,cG5nOlNJMDAgMTA0Mg==", view.ImageSrc)
}

func TestGetSlipHandlerEmailContext(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodGet, "/orders/1042/upn?context=email&audience=admin", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.Equal(t, "Payment slip not available", env.Message)
	var view entity.SlipView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.False(t, view.Available)
	assert.Equal(t, entity.SlipReasonNotApplicable, view.Reason)
}

func TestGetSlipHandlerBadQuery(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodGet, "/orders/1042/upn?context=sms", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decode(t, w)
	assert.Equal(t, "Validation failed", env.Message)
	var fields []apperror.FieldError
	require.NoError(t, json.Unmarshal(env.Errors, &fields))
	require.Len(t, fields, 1)
	assert.Equal(t, "query", fields[0].Field)
}

func TestGetSlipHandlerBadTemplate(t *testing.T) {
	tests := []struct {
		name   string
		target string
		fields []string
	}{
		{name: "reference without placeholder", target: "/orders/1042/upn?reference_template=SI00", fields: []string{"reference_template"}},
		{name: "printf style purpose", target: "/orders/1042/upn?purpose_template=Order%20%25s", fields: []string{"purpose_template"}},
		{name: "both on qr", target: "/orders/1042/upn/qr.png?reference_template=x&purpose_template=%7BorderNumber%7D%7BorderNumber%7D", fields: []string{"reference_template", "purpose_template"}},
		{name: "pdf", target: "/orders/1042/upn/slip.pdf?purpose_template=none", fields: []string{"purpose_template"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testRouter(t, defaultAccounts(), stubRenderer{})

			w := do(router, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)

			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, "Invalid payment slip template", env.Message)
			var fields []apperror.FieldError
			require.NoError(t, json.Unmarshal(env.Errors, &fields))
			got := make([]string, 0, len(fields))
			for _, f := range fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestGetSlipHandlerTemplateOverride(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodGet, "/orders/1042/upn?purpose_template=Naro%C4%8Dilo%20%7BorderNumber%7D", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view entity.SlipView
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
	assert.Equal(t, "Naročilo 1042", view.Slip.Purpose)
}

func TestGetSlipHandlerNotFound(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodGet, "/orders/9999/upn", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestGetQRHandler(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodGet, "/orders/1042/upn/qr.png?purpose_code=GDSV", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png:SI00 1042", w.Body.String())
}

func TestGetQRHandlerErrors(t *testing.T) {
	router := testRouter(t, nil, stubRenderer{})
	w := do(router, http.MethodGet, "/orders/1042/upn/qr.png", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	router = testRouter(t, defaultAccounts(), stubRenderer{err: &upn.RenderError{Err: errors.New("boom")}})
	w = do(router, http.MethodGet, "/orders/1042/upn/qr.png", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetPDFHandler(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{err: &upn.RenderError{Err: errors.New("no image")}})

	w := do(router, http.MethodGet, "/orders/1042/upn/slip.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="upn-1042.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestPrintSlipHandler(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})
	w := do(router, http.MethodPost, "/orders/1042/upn/print", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	router = testRouter(t, nil, stubRenderer{})
	w = do(router, http.MethodPost, "/orders/1042/upn/print", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListAccountsHandler(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodGet, "/accounts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var accounts []service.AccountListing
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &accounts))
	require.Len(t, accounts, 1)
	assert.True(t, accounts[0].Selected)
	assert.Equal(t, "SI56 0201 0001 2345 678", accounts[0].IBAN)
}

func TestPrinterStatusHandler(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodGet, "/printer/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status service.PrinterStatus
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &status))
	assert.False(t, status.Configured)
	assert.Equal(t, "none", status.Type)
}

func TestTokenHandler(t *testing.T) {
	router := testRouter(t, defaultAccounts(), stubRenderer{})

	w := do(router, http.MethodPost, "/auth/token", []byte(`{"username":"admin","password":"s3cret"}`))
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.NotEmpty(t, data.AccessToken)
	assert.Equal(t, "Bearer", data.TokenType)

	w = do(router, http.MethodPost, "/auth/token", []byte(`{"username":"admin","password":"nope"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodPost, "/auth/token", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
