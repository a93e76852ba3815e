package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"aimaster-store/internal/config"
	"aimaster-store/internal/model"
)

// RazorpayClient creates gateway orders. Credentials never leave the server
// side of the payment function.
type RazorpayClient interface {
	CreateOrder(ctx context.Context, amount int64, receipt, productID string) (*GatewayOrder, error)
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type razorpayClientImpl struct {
	http       *resty.Client
	baseApiURL string
}

func NewRazorpayClient(cfg *config.Razorpay) RazorpayClient {
	http := resty.New().
		SetTimeout(30 * time.Second).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetHeader("Content-Type", "application/json")

	return &razorpayClientImpl{
		http:       http,
		baseApiURL: trimSlash(cfg.BaseApiURL),
	}
}

func (c *razorpayClientImpl) CreateOrder(ctx context.Context, amount int64, receipt, productID string) (*GatewayOrder, error) {
	// amount is already in minor units; forwarded unchanged
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
		"notes": map[string]string{
			"product_id": productID,
		},
	}

	var order GatewayOrder
	var gwErr struct {
		Error struct {
			Description string `json:"description"`
		} `json:"error"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&order).
		SetError(&gwErr).
		Post(c.baseApiURL + "/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("%w: razorpay create order: %v", model.ErrPaymentFunction, err)
	}
	if resp.IsError() {
		desc := gwErr.Error.Description
		if desc == "" {
			desc = resp.String()
		}
		return nil, fmt.Errorf("%w: razorpay %d: %s", model.ErrPaymentFunction, resp.StatusCode(), desc)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: razorpay returned no order id", model.ErrPaymentFunction)
	}

	return &order, nil
}
