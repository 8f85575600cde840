// Package store provides the HTTP client for the remote invoice service.
//
// The service owns persistence and document rendering; this package only
// mediates the four operations billfold needs (list, create, delete,
// generate) plus resolution of download locations. Requests are
// context-aware, carry a User-Agent, and time out after ten seconds. There is
// no retry logic: the caller decides whether and when to try again.
//
// Errors split into two kinds. When the service answers with a JSON body of
// the form {"error": "..."} the message surfaces through *APIError so the UI
// can show the service's wording verbatim. Everything else (connection
// refused, timeout, malformed JSON) comes back as a wrapped transport error.
//
// Monetary fields on persisted invoices decode into decimal.Decimal so list
// rendering never accumulates float noise. Submission payloads, by contrast,
// carry plain numbers: the composer normalizes every field before the payload
// reaches this package.
package store
