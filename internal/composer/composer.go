package composer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jswain/billfold/internal/store"
)

// DefaultTaxRate is the tax percentage a fresh draft starts with.
const DefaultTaxRate = "10"

// CustomerField identifies one editable customer attribute.
type CustomerField int

const (
	FieldFirstName CustomerField = iota
	FieldLastName
	FieldPhone
)

// ItemField identifies one editable line item attribute.
type ItemField int

const (
	FieldQuantity ItemField = iota
	FieldDescription
	FieldUnitPrice
)

// Customer holds the invoice recipient. All three fields are required before
// submission but may be empty while editing.
type Customer struct {
	FirstName string
	LastName  string
	Phone     string
}

// LineItem is one entry of the draft. Quantity and UnitPrice keep the raw
// text the user typed; an empty or unparseable value counts as zero in the
// computed LineTotal but blocks submission. LineTotal is recomputed on every
// edit and is never stale relative to its inputs.
type LineItem struct {
	Quantity    string
	Description string
	UnitPrice   string
	LineTotal   decimal.Decimal
}

// QuantityValue returns the quantity as an integer, zero when empty or
// unparseable.
func (it LineItem) QuantityValue() int {
	n, err := strconv.Atoi(strings.TrimSpace(it.Quantity))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// UnitPriceValue returns the unit price as a decimal, zero when empty or
// unparseable.
func (it LineItem) UnitPriceValue() decimal.Decimal {
	return parseDecimal(it.UnitPrice)
}

// Totals are derived from the draft on every read; they are never cached.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Draft is the in-progress invoice being composed. It exists only locally
// until submitted, and always contains at least one line item.
type Draft struct {
	Customer Customer
	TaxRate  string // percent, raw text as typed
	Items    []LineItem
}

// NewDraft returns an empty draft with the default tax rate and a single
// default line item.
func NewDraft() Draft {
	return Draft{
		TaxRate: DefaultTaxRate,
		Items:   []LineItem{newLineItem()},
	}
}

func newLineItem() LineItem {
	return LineItem{Quantity: "1"}
}

// SetCustomerField writes one customer attribute. No validation happens at
// write time; required-field gating applies at submission.
func (d *Draft) SetCustomerField(field CustomerField, value string) {
	switch field {
	case FieldFirstName:
		d.Customer.FirstName = value
	case FieldLastName:
		d.Customer.LastName = value
	case FieldPhone:
		d.Customer.Phone = value
	}
}

// SetTaxRate stores the raw tax percentage text. Out-of-range values are kept
// as typed and simply produce out-of-range tax in the totals display.
func (d *Draft) SetTaxRate(raw string) {
	d.TaxRate = raw
}

// TaxRateValue returns the tax rate percentage as a decimal, zero when the
// raw text is empty or unparseable.
func (d Draft) TaxRateValue() decimal.Decimal {
	return parseDecimal(d.TaxRate)
}

// SetItemField writes one attribute of the item at index and recomputes that
// item's line total. Indexes are kept valid by the caller since items only
// change through AddItem and RemoveItem.
func (d *Draft) SetItemField(index int, field ItemField, raw string) {
	if index < 0 || index >= len(d.Items) {
		return
	}
	item := &d.Items[index]
	switch field {
	case FieldQuantity:
		item.Quantity = normalizeQuantity(raw)
	case FieldDescription:
		item.Description = raw
	case FieldUnitPrice:
		item.UnitPrice = raw
	}
	qty := decimal.NewFromInt(int64(item.QuantityValue()))
	item.LineTotal = qty.Mul(item.UnitPriceValue())
}

// normalizeQuantity coerces quantity input to integer text. Empty input stays
// empty (a transient invalid state); anything unparseable is kept verbatim
// and counts as zero.
func normalizeQuantity(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return strconv.Itoa(n)
	}
	return raw
}

// AddItem appends a fresh default line item. Growth is unbounded.
func (d *Draft) AddItem() {
	d.Items = append(d.Items, newLineItem())
}

// RemoveItem deletes the item at index. A draft always keeps at least one
// item; removal that would empty the sequence is refused.
func (d *Draft) RemoveItem(index int) bool {
	if len(d.Items) <= 1 || index < 0 || index >= len(d.Items) {
		return false
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	return true
}

// Totals derives subtotal, tax, and total from the current items and tax
// rate. The invariants tax == subtotal*(rate/100) and total == subtotal+tax
// hold exactly for every returned value.
func (d Draft) Totals() Totals {
	subtotal := decimal.Zero
	for _, item := range d.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	tax := subtotal.Mul(d.TaxRateValue()).Div(decimal.NewFromInt(100))
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// BuildPayload produces the immutable submission snapshot. Numeric coercion
// here is deliberately lossy: quantities and prices that fail to parse become
// zero so the service never receives a non-numeric field. The tax percentage
// converts to a decimal fraction at this boundary and nowhere else.
func (d Draft) BuildPayload() store.InvoicePayload {
	items := make([]store.PayloadItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, store.PayloadItem{
			Quantity:    item.QuantityValue(),
			Description: item.Description,
			UnitPrice:   item.UnitPriceValue().InexactFloat64(),
			LineTotal:   item.LineTotal.InexactFloat64(),
		})
	}
	fraction := d.TaxRateValue().Div(decimal.NewFromInt(100))
	return store.InvoicePayload{
		FirstName: d.Customer.FirstName,
		LastName:  d.Customer.LastName,
		Phone:     d.Customer.Phone,
		SalesTax:  fraction.InexactFloat64(),
		Items:     items,
	}
}

// Reset replaces the draft with a fresh one. Called after a confirmed
// successful submission.
func (d *Draft) Reset() {
	*d = NewDraft()
}

func parseDecimal(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ItemCount returns the number of line items.
func (d Draft) ItemCount() int {
	return len(d.Items)
}

// String summarizes the draft for diagnostics.
func (d Draft) String() string {
	totals := d.Totals()
	return fmt.Sprintf("draft{items=%d total=%s}", len(d.Items), totals.Total.StringFixed(2))
}
