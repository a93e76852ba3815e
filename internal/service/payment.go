package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aimaster-store/internal/client"
	"aimaster-store/internal/dto"
	"aimaster-store/internal/model"
	"aimaster-store/internal/session"
)

// PaymentService negotiates checkout sessions with the payment function and
// hosts the function's server side.
//
// Initiate never fails: local-mode sessions get a synthetic pair outright,
// and remote-mode sessions degrade to a synthetic pair when the function is
// unreachable or misconfigured. That is safe because only the payment
// confirmation callback creates an order; a degraded session token cannot
// fabricate a paid purchase.
type PaymentService interface {
	Initiate(ctx context.Context, sess *session.Session, req *dto.PaymentSessionRequest) (*dto.PaymentSession, error)
	// CreateGatewayOrder backs the hosted create-payment-order function. It
	// validates the request, creates a gateway order with server-side
	// credentials, and fails hard with ErrValidation or ErrPaymentFunction.
	CreateGatewayOrder(ctx context.Context, req *dto.PaymentOrderRequest) (*dto.PaymentSession, error)
}

type paymentServiceImpl struct {
	http        *resty.Client
	functionURL string
	razorpay    client.RazorpayClient // nil when gateway keys are missing
	log         zerolog.Logger
}

func NewPaymentService(functionURL string, razorpay client.RazorpayClient, log zerolog.Logger) PaymentService {
	return &paymentServiceImpl{
		http:        resty.New().SetTimeout(30 * time.Second),
		functionURL: functionURL,
		razorpay:    razorpay,
		log:         log,
	}
}

func (s *paymentServiceImpl) Initiate(ctx context.Context, sess *session.Session, req *dto.PaymentSessionRequest) (*dto.PaymentSession, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id is required", model.ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrValidation)
	}

	if sess.Mode != session.ModeRemote {
		return syntheticSession(), nil
	}
	if s.functionURL == "" {
		s.log.Warn().Msg("payment function not configured, issuing synthetic session")
		return syntheticSession(), nil
	}

	body := dto.PaymentOrderRequest{
		Amount:    req.Amount,
		UserID:    sess.Profile.ID,
		ProductID: req.ProductID,
		UserEmail: sess.Profile.Email,
	}

	var result dto.PaymentSession
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+sess.AccessToken).
		SetBody(body).
		SetResult(&result).
		Post(s.functionURL)
	if err != nil || resp.IsError() || result.SessionToken == "" {
		// degraded mode: the checkout UI still gets a session, the raw
		// failure stays out of the user's face
		evt := s.log.Warn().Str("user_id", sess.Profile.ID).Str("product_id", req.ProductID)
		if err != nil {
			evt = evt.Err(err)
		} else {
			evt = evt.Int("status", resp.StatusCode())
		}
		evt.Msg("payment function failed, issuing synthetic session")
		return syntheticSession(), nil
	}

	return &result, nil
}

func syntheticSession() *dto.PaymentSession {
	return &dto.PaymentSession{
		SessionToken: "demo_session_" + uuid.NewString(),
		OrderID:      "demo_order_" + uuid.NewString(),
	}
}

func (s *paymentServiceImpl) CreateGatewayOrder(ctx context.Context, req *dto.PaymentOrderRequest) (*dto.PaymentSession, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrValidation)
	}
	if req.ProductID == "" || req.UserID == "" || req.UserEmail == "" {
		return nil, fmt.Errorf("%w: productId, userId and userEmail are required", model.ErrValidation)
	}
	if s.razorpay == nil {
		return nil, fmt.Errorf("%w: missing gateway credentials", model.ErrPaymentFunction)
	}

	receipt := receiptID(req.ProductID)
	order, err := s.razorpay.CreateOrder(ctx, req.Amount, receipt, req.ProductID)
	if err != nil {
		return nil, err
	}

	return &dto.PaymentSession{
		SessionToken: order.ID,
		OrderID:      receipt,
	}, nil
}

func receiptID(productID string) string {
	prefix := productID
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}
	return fmt.Sprintf("rcpt_%s_%d", prefix, time.Now().UnixMilli())
}
