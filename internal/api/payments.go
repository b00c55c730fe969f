package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/zaimara-studio/storefront/pkg/types"
)

// PaymentInstructions fetches the order plus method-specific payment details
// for the post-checkout payment page.
func (c *Client) PaymentInstructions(ctx context.Context, orderNumber string) (*types.Order, error) {
	var out orderEnvelope
	err := c.do(ctx, request{
		operation: "payment_instructions",
		method:    http.MethodGet,
		path:      fmt.Sprintf("payments/instructions/%s", url.PathEscape(orderNumber)),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// PaymentProof carries the user-submitted evidence of an online payment.
type PaymentProof struct {
	TransactionID   string
	Notes           string
	ReceiptFilename string
	Receipt         io.Reader
}

// ConfirmPayment uploads a payment proof for the order. The receipt image is
// optional; the transaction id is not.
func (c *Client) ConfirmPayment(ctx context.Context, orderNumber string, proof PaymentProof) (*types.Order, error) {
	fields := map[string]string{
		"transactionId": proof.TransactionID,
		"notes":         proof.Notes,
	}
	var files []filePart
	if proof.Receipt != nil {
		files = append(files, filePart{field: "receipt", filename: proof.ReceiptFilename, content: proof.Receipt})
	}
	body, contentType, err := multipartBody(fields, files...)
	if err != nil {
		return nil, err
	}

	var out orderEnvelope
	err = c.do(ctx, request{
		operation:   "confirm_payment",
		method:      http.MethodPost,
		path:        fmt.Sprintf("payments/confirm/%s", url.PathEscape(orderNumber)),
		multipart:   body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// AdminConfirmPayment marks an order's payment verified from the back office.
func (c *Client) AdminConfirmPayment(ctx context.Context, orderID, adminNotes string) (*types.Order, error) {
	var out orderEnvelope
	err := c.do(ctx, request{
		operation: "admin_confirm_payment",
		method:    http.MethodPatch,
		path:      fmt.Sprintf("admin/orders/%s/confirm-payment", url.PathEscape(orderID)),
		body:      map[string]string{"adminNotes": adminNotes},
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Order, nil
}
