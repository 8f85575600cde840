package composer

import "testing"

func completeDraft() Draft {
	d := NewDraft()
	d.SetCustomerField(FieldFirstName, "Ada")
	d.SetCustomerField(FieldLastName, "Lovelace")
	d.SetCustomerField(FieldPhone, "555-0100")
	d.SetItemField(0, FieldQuantity, "2")
	d.SetItemField(0, FieldDescription, "widgets")
	d.SetItemField(0, FieldUnitPrice, "5.00")
	return d
}

func TestCanSubmit_CompleteDraft(t *testing.T) {
	d := completeDraft()
	if !d.CanSubmit() {
		t.Fatalf("CanSubmit = false for a complete draft: %v", d.Validate())
	}
}

func TestCanSubmit_RejectsIncompleteDrafts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"fresh draft", func(d *Draft) { *d = NewDraft() }},
		{"missing first name", func(d *Draft) { d.SetCustomerField(FieldFirstName, "") }},
		{"missing last name", func(d *Draft) { d.SetCustomerField(FieldLastName, "") }},
		{"missing phone", func(d *Draft) { d.SetCustomerField(FieldPhone, "") }},
		{"missing description", func(d *Draft) { d.SetItemField(0, FieldDescription, "") }},
		{"empty quantity", func(d *Draft) { d.SetItemField(0, FieldQuantity, "") }},
		{"zero quantity", func(d *Draft) { d.SetItemField(0, FieldQuantity, "0") }},
		{"empty price", func(d *Draft) { d.SetItemField(0, FieldUnitPrice, "") }},
		{"non-numeric price", func(d *Draft) { d.SetItemField(0, FieldUnitPrice, "free") }},
		{"incomplete second item", func(d *Draft) { d.AddItem() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDraft()
			tt.mutate(&d)
			if d.CanSubmit() {
				t.Fatalf("CanSubmit = true, want gating to reject the draft")
			}
		})
	}
}

func TestCanSubmit_MultipleCompleteItems(t *testing.T) {
	d := completeDraft()
	d.AddItem()
	d.SetItemField(1, FieldQuantity, "1")
	d.SetItemField(1, FieldDescription, "gadgets")
	d.SetItemField(1, FieldUnitPrice, "3.50")
	if !d.CanSubmit() {
		t.Fatalf("CanSubmit = false with two complete items: %v", d.Validate())
	}
}
