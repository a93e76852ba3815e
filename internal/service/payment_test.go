package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aimaster-store/internal/client"
	"aimaster-store/internal/config"
	"aimaster-store/internal/dto"
	"aimaster-store/internal/model"
	"aimaster-store/internal/service"
	"aimaster-store/internal/session"
)

func remoteSession() *session.Session {
	return &session.Session{
		ID:          "sess-1",
		Profile:     model.Profile{ID: "remote-1", Email: "buyer@example.com"},
		Mode:        session.ModeRemote,
		AccessToken: "remote-token",
	}
}

func TestInitiateLocalModeReturnsSyntheticPair(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	payments := service.NewPaymentService(srv.URL, nil, zerolog.Nop())
	sess := &session.Session{
		ID:      "sess-local",
		Profile: model.Profile{ID: "user-123", Email: "demo@example.com"},
		Mode:    session.ModeLocal,
	}

	result, err := payments.Initiate(context.Background(), sess, &dto.PaymentSessionRequest{
		ProductID: "1",
		Amount:    99900,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.SessionToken, "demo_session_"))
	assert.True(t, strings.HasPrefix(result.OrderID, "demo_order_"))
	// local mode never touches the function
	assert.Zero(t, calls.Load())
}

func TestInitiateRemoteForwardsIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer remote-token", r.Header.Get("Authorization"))

		var req dto.PaymentOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(99900), req.Amount)
		assert.Equal(t, "remote-1", req.UserID)
		assert.Equal(t, "1", req.ProductID)
		assert.Equal(t, "buyer@example.com", req.UserEmail)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dto.PaymentSession{
			SessionToken: "order_rp_1",
			OrderID:      "rcpt_1_9",
		})
	}))
	defer srv.Close()

	payments := service.NewPaymentService(srv.URL, nil, zerolog.Nop())

	result, err := payments.Initiate(context.Background(), remoteSession(), &dto.PaymentSessionRequest{
		ProductID: "1",
		Amount:    99900,
	})
	require.NoError(t, err)
	assert.Equal(t, "order_rp_1", result.SessionToken)
	assert.Equal(t, "rcpt_1_9", result.OrderID)
}

func TestInitiateDegradesOnFunctionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Server misconfiguration: Missing Razorpay keys"})
	}))
	defer srv.Close()

	payments := service.NewPaymentService(srv.URL, nil, zerolog.Nop())

	// a 400 from the function degrades to a synthetic pair, never an error
	result, err := payments.Initiate(context.Background(), remoteSession(), &dto.PaymentSessionRequest{
		ProductID: "1",
		Amount:    99900,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.SessionToken, "demo_session_"))
	assert.True(t, strings.HasPrefix(result.OrderID, "demo_order_"))
}

func TestInitiateDegradesWhenFunctionUnreachable(t *testing.T) {
	payments := service.NewPaymentService("http://127.0.0.1:1/functions/create-payment-order", nil, zerolog.Nop())

	result, err := payments.Initiate(context.Background(), remoteSession(), &dto.PaymentSessionRequest{
		ProductID: "1",
		Amount:    99900,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.SessionToken, "demo_session_"))
}

func TestInitiateValidatesInput(t *testing.T) {
	payments := service.NewPaymentService("", nil, zerolog.Nop())
	ctx := context.Background()

	_, err := payments.Initiate(ctx, remoteSession(), &dto.PaymentSessionRequest{Amount: 100})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = payments.Initiate(ctx, remoteSession(), &dto.PaymentSessionRequest{ProductID: "1"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCreateGatewayOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key-id", user)
		assert.Equal(t, "key-secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		// minor units forwarded unchanged
		assert.Equal(t, float64(99900), payload["amount"])
		assert.Equal(t, "INR", payload["currency"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.GatewayOrder{ID: "order_rp_9", Amount: 99900, Currency: "INR"})
	}))
	defer srv.Close()

	razorpay := client.NewRazorpayClient(&config.Razorpay{
		BaseApiURL: srv.URL,
		KeyID:      "key-id",
		KeySecret:  "key-secret",
	})
	payments := service.NewPaymentService("", razorpay, zerolog.Nop())

	result, err := payments.CreateGatewayOrder(context.Background(), &dto.PaymentOrderRequest{
		Amount:    99900,
		UserID:    "remote-1",
		ProductID: "prod-42",
		UserEmail: "buyer@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_rp_9", result.SessionToken)
	assert.True(t, strings.HasPrefix(result.OrderID, "rcpt_prod-"))
}

func TestCreateGatewayOrderGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]map[string]string{
			"error": {"description": "Authentication failed"},
		})
	}))
	defer srv.Close()

	razorpay := client.NewRazorpayClient(&config.Razorpay{BaseApiURL: srv.URL, KeyID: "k", KeySecret: "s"})
	payments := service.NewPaymentService("", razorpay, zerolog.Nop())

	_, err := payments.CreateGatewayOrder(context.Background(), &dto.PaymentOrderRequest{
		Amount:    100,
		UserID:    "u",
		ProductID: "p",
		UserEmail: "e@x.y",
	})
	assert.ErrorIs(t, err, model.ErrPaymentFunction)
}

func TestCreateGatewayOrderValidation(t *testing.T) {
	payments := service.NewPaymentService("", nil, zerolog.Nop())
	ctx := context.Background()

	_, err := payments.CreateGatewayOrder(ctx, &dto.PaymentOrderRequest{
		UserID: "u", ProductID: "p", UserEmail: "e@x.y",
	})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = payments.CreateGatewayOrder(ctx, &dto.PaymentOrderRequest{Amount: 100})
	assert.ErrorIs(t, err, model.ErrValidation)

	// no gateway credentials configured
	_, err = payments.CreateGatewayOrder(ctx, &dto.PaymentOrderRequest{
		Amount: 100, UserID: "u", ProductID: "p", UserEmail: "e@x.y",
	})
	assert.ErrorIs(t, err, model.ErrPaymentFunction)
}
