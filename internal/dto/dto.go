// Package dto holds the request and response shapes for the endpoints whose
// bodies are not open-schema documents. Numeric fields that clients send as
// either JSON numbers or numeric strings are typed as interface{} and coerced
// by the handlers.
package dto

import "pcforge-backend/internal/store"

// PatchStock overwrites a product's stock with an absolute value.
type PatchStock struct {
	Value interface{} `json:"value"`
}

// PlaceOrder carries the order form plus the absolute stock/sold values the
// client computed for the referenced product.
type PlaceOrder struct {
	FormData map[string]interface{} `json:"formData"`
	NewStock interface{}            `json:"newStock"`
	NewSold  interface{}            `json:"newSold"`
}

type PlaceOrderResult struct {
	AddOrder      *store.InsertResult `json:"addOrder"`
	UpdateProduct *store.UpdateResult `json:"updateProduct"`
}

// CancelOrder names the product to roll back and the absolute stock/sold
// values to restore on it.
type CancelOrder struct {
	ItemID      string      `json:"itemID"`
	AdjustStock interface{} `json:"adjustStock"`
	AdjustSold  interface{} `json:"adjustSold"`
}

type CancelOrderResult struct {
	DeleteOrder *store.DeleteResult `json:"deleteOrder"`
	AdjustItem  *store.UpdateResult `json:"adjustItem"`
}

type PaymentIntent struct {
	Price interface{} `json:"price"`
}

// ConfirmPayment is written onto the order after the client completes the
// payment out-of-band.
type ConfirmPayment struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	TransactionID string `json:"transactionID"`
}

type UpdateStatus struct {
	NewStatus string `json:"newStatus"`
}

type UpsertUserResult struct {
	Result *store.UpdateResult `json:"result"`
	Token  string              `json:"token"`
}

type AdminCheck struct {
	Admin bool `json:"admin"`
}
