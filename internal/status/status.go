// Package status models the single operation-outcome slot shown in the UI.
//
// At most one message is active at a time; every operation overwrites the
// previous one and whichever operation settles last wins. The outcome kind is
// an explicit field rather than a marker embedded in the text.
package status

import "fmt"

// Kind classifies a status message.
type Kind int

const (
	// None means no operation outcome is being shown.
	None Kind = iota
	// Pending marks an operation that has been dispatched but not settled.
	Pending
	// Success marks a settled, successful operation.
	Success
	// Error marks a settled, failed operation.
	Error
)

// Message is one human-readable operation outcome.
type Message struct {
	Kind Kind
	Text string
}

// IsZero reports whether no message is set.
func (m Message) IsZero() bool {
	return m.Kind == None && m.Text == ""
}

// Pendingf builds an in-progress message.
func Pendingf(format string, args ...any) Message {
	return Message{Kind: Pending, Text: fmt.Sprintf(format, args...)}
}

// Successf builds a success message.
func Successf(format string, args ...any) Message {
	return Message{Kind: Success, Text: fmt.Sprintf(format, args...)}
}

// Errorf builds an error message.
func Errorf(format string, args ...any) Message {
	return Message{Kind: Error, Text: fmt.Sprintf(format, args...)}
}

// Clear returns the empty message.
func Clear() Message {
	return Message{}
}
