package store

import (
	"time"

	"github.com/shopspring/decimal"
)

const storeTimestampLayout = "2006-01-02T15:04:05.999999"

// Invoice describes a persisted invoice as reported by the store. All fields
// are read-only on this side; changes only become visible through a fresh list
// fetch.
type Invoice struct {
	ID         int64           `json:"id"`
	InvoiceID  int64           `json:"invoice_id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Phone      string          `json:"phone"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	SalesTax   decimal.Decimal `json:"salestax"`
	Total      decimal.Decimal `json:"total"`
	ItemsCount int             `json:"items_count"`
	CreatedAt  string          `json:"created_at"`
}

// CustomerName returns the invoice's customer display name.
func (inv Invoice) CustomerName() string {
	switch {
	case inv.FirstName == "":
		return inv.LastName
	case inv.LastName == "":
		return inv.FirstName
	default:
		return inv.FirstName + " " + inv.LastName
	}
}

// ParsedCreatedAt returns the creation timestamp as time.Time when possible.
func (inv Invoice) ParsedCreatedAt() time.Time {
	return parseTime(inv.CreatedAt)
}

// PayloadItem is one normalized line item of a submission payload. Numeric
// fields are plain numbers on the wire; the composer guarantees they are never
// NaN or non-numeric by coercing parse failures to zero before building the
// payload.
type PayloadItem struct {
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// InvoicePayload is the immutable submission snapshot sent on create.
// SalesTax is a decimal fraction (0.10 for 10%); the percent-to-fraction
// conversion happens exactly once, when the payload is built.
type InvoicePayload struct {
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Phone     string        `json:"phone"`
	SalesTax  float64       `json:"salestax"`
	Items     []PayloadItem `json:"items"`
}

// CreateResponse mirrors the create endpoint's success body.
type CreateResponse struct {
	Message   string `json:"message"`
	InvoiceID int64  `json:"invoice_id"`
}

// GenerateResponse mirrors the generate endpoint's success body. DownloadURL
// is a path relative to the service origin.
type GenerateResponse struct {
	Message     string `json:"message"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, storeTimestampLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
