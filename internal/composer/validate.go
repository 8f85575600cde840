package composer

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// submission is the declarative view of a draft used for required-field
// gating. Tags, not code, define what "complete" means.
type submission struct {
	FirstName string           `validate:"required"`
	LastName  string           `validate:"required"`
	Phone     string           `validate:"required"`
	Items     []submissionItem `validate:"required,min=1,dive"`
}

type submissionItem struct {
	Quantity    int    `validate:"required,min=1"`
	Description string `validate:"required"`
	UnitPrice   string `validate:"required,numeric"`
}

// Validate reports whether the draft satisfies the submission requirements:
// non-empty customer fields and, for every item, a description, a quantity of
// at least one, and a numeric unit price.
func (d Draft) Validate() error {
	snapshot := submission{
		FirstName: d.Customer.FirstName,
		LastName:  d.Customer.LastName,
		Phone:     d.Customer.Phone,
		Items:     make([]submissionItem, 0, len(d.Items)),
	}
	for _, item := range d.Items {
		snapshot.Items = append(snapshot.Items, submissionItem{
			Quantity:    item.QuantityValue(),
			Description: item.Description,
			UnitPrice:   item.UnitPrice,
		})
	}
	return validate.Struct(snapshot)
}

// CanSubmit reports whether the submit action should be enabled. This is
// presentation-level gating: an incomplete draft is never dispatched, and no
// error taxonomy is attached to individual fields.
func (d Draft) CanSubmit() bool {
	return d.Validate() == nil
}
