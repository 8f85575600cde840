// Package composer owns the editable invoice draft.
//
// A Draft holds customer fields, a tax rate in percent, and an ordered list
// of line items whose display order is also their submission order. Numeric
// inputs keep the raw text the user typed; empty or unparseable values count
// as zero for the live totals but block submission. Line totals recompute on
// every edit, and Totals derives subtotal, tax, and total fresh on every
// read, so no displayed figure can drift from its inputs.
//
// BuildPayload is the single normalization boundary: parse failures coerce
// to zero and the percent tax rate becomes a decimal fraction there, never
// earlier. A failed submission leaves the draft untouched so the user can
// retry without re-entering anything.
package composer
