package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aimaster-store/internal/dto"
	"aimaster-store/internal/handler"
	"aimaster-store/internal/model"
	"aimaster-store/internal/session"
)

type fakePaymentService struct {
	result *dto.PaymentSession
	err    error
}

func (f *fakePaymentService) Initiate(context.Context, *session.Session, *dto.PaymentSessionRequest) (*dto.PaymentSession, error) {
	return f.result, f.err
}

func (f *fakePaymentService) CreateGatewayOrder(context.Context, *dto.PaymentOrderRequest) (*dto.PaymentSession, error) {
	return f.result, f.err
}

func callFunction(t *testing.T, h *handler.PaymentHandler, body string, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/functions/create-payment-order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h.CreatePaymentOrder(e.NewContext(req, rec)))
	return rec
}

func TestPaymentFunctionRequiresAuthHeader(t *testing.T) {
	h := handler.NewPaymentHandler(&fakePaymentService{})

	rec := callFunction(t, h, `{"amount":100}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Authorization")
}

func TestPaymentFunctionSuccess(t *testing.T) {
	h := handler.NewPaymentHandler(&fakePaymentService{
		result: &dto.PaymentSession{SessionToken: "order_rp_1", OrderID: "rcpt_1_1"},
	})

	rec := callFunction(t, h,
		`{"amount":99900,"userId":"u1","productId":"p1","userEmail":"a@b.c"}`,
		"Bearer remote-token")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.PaymentSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "order_rp_1", body.SessionToken)
	assert.Equal(t, "rcpt_1_1", body.OrderID)
}

func TestPaymentFunctionStructuredError(t *testing.T) {
	h := handler.NewPaymentHandler(&fakePaymentService{
		err: fmt.Errorf("%w: amount must be positive", model.ErrValidation),
	})

	rec := callFunction(t, h, `{"amount":-1}`, "Bearer remote-token")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "amount")
}
