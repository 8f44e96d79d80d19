package domain

import (
	"errors"
)

var (
	MessageSuccessCreatePayment = "inscription payment created successfully"
	MessageSuccessGetPayments   = "payments retrieved successfully"
	MessageSuccessWebhook       = "payment notification processed"

	MessageFailedCreatePayment = "failed to create inscription payment"
	MessageFailedGetPayments   = "failed to retrieve payments"
	MessageFailedWebhook       = "failed to process payment notification"

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNoSamplesToPay      = errors.New("company has no samples pending payment")
	ErrPaymentFailed       = errors.New("payment processing failed")
)

type (
	CreatePaymentRequest struct {
		CompanyID string `json:"company_id" validate:"required,uuid"`
	}

	CreatePaymentResponse struct {
		TransactionID string `json:"transaction_id"`
		OrderID       string `json:"order_id"`
		Amount        int64  `json:"amount"`
		InvoiceURL    string `json:"invoice_url"`
	}

	PaymentResponse struct {
		ID         string `json:"id"`
		OrderID    string `json:"order_id"`
		CompanyID  string `json:"company_id"`
		Amount     int64  `json:"amount"`
		Status     string `json:"status"`
		InvoiceURL string `json:"invoice_url,omitempty"`
	}

	MidtransNotificationRequest struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
	}
)
