// Package ui implements the billfold terminal interface on Bubble Tea.
//
// The screen splits into a compose pane (the editable invoice form with live
// totals) and a list pane (previously created invoices). All state lives in
// one Model and every mutation happens inside Update on the program's single
// goroutine; remote operations run as commands whose results come back as
// typed messages. Overlapping operations settle independently and the last
// settlement owns the shared status slot in the header.
//
// Because messages are only applied while the program runs, a result that
// arrives after quit is simply dropped by the runtime; no additional
// liveness guard is needed around late responses.
package ui
