package restclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/srgjo27/ticketing_client/internal/core/domain"
)

type paymentIntentWire struct {
	PaymentID      flexString `json:"paymentId"`
	PaymentIDSnake flexString `json:"payment_id"`
	ID             flexString `json:"id"`
	QRCodeURL      string     `json:"qrCodeUrl"`
	QRCodeURLSnake string     `json:"qr_code_url"`
	QRCode         string     `json:"qrCode"`
	PaymentURL     string     `json:"paymentUrl"`
	Status         string     `json:"status"`
}

type paymentStatusWire struct {
	Status             string `json:"status"`
	PaymentStatus      string `json:"paymentStatus"`
	PaymentStatusSnake string `json:"payment_status"`
}

func (c *Client) CreateVNPayPayment(ctx context.Context, orderID string) (*domain.PaymentIntent, error) {
	var w paymentIntentWire
	if err := c.do(ctx, "POST", "/payments/vnpay/{orderId}", "/payments/vnpay/"+url.PathEscape(orderID), nil, &w); err != nil {
		return nil, err
	}

	intent := &domain.PaymentIntent{
		ID:        firstNonEmpty(string(w.PaymentID), string(w.PaymentIDSnake), string(w.ID)),
		OrderID:   orderID,
		Status:    domain.PaymentPending,
		QRCodeURL: firstNonEmpty(w.QRCodeURL, w.QRCodeURLSnake, w.QRCode, w.PaymentURL),
	}
	if intent.ID == "" {
		return nil, fmt.Errorf("create payment for order %s: response has no payment id", orderID)
	}
	if w.Status != "" {
		if status, err := domain.NormalizePaymentStatus(w.Status); err == nil {
			intent.Status = status
		}
	}
	return intent, nil
}

func (c *Client) GetPaymentStatus(ctx context.Context, paymentID string) (domain.PaymentStatus, error) {
	var w paymentStatusWire
	if err := c.do(ctx, "GET", "/payments/{id}/status", "/payments/"+url.PathEscape(paymentID)+"/status", nil, &w); err != nil {
		return "", err
	}
	return domain.NormalizePaymentStatus(firstNonEmpty(w.Status, w.PaymentStatus, w.PaymentStatusSnake))
}

func (c *Client) CancelPayment(ctx context.Context, paymentID string) error {
	return c.do(ctx, "POST", "/payments/{id}/cancel", "/payments/"+url.PathEscape(paymentID)+"/cancel", nil, nil)
}
