package ui

import (
	"github.com/shopspring/decimal"

	"github.com/jswain/billfold/internal/prefs"
)

// formatMoney renders a decimal amount with a currency sign and two decimal
// places.
func formatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// errorText extracts the user-facing message for a failed operation: the
// store's reported error text when present, the transport error otherwise.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func savePrefs(path, themeName string) error {
	return prefs.Save(path, prefs.Prefs{Theme: themeName})
}
