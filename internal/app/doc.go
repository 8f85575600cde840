// Package app wires billfold together: configuration, logging, the store
// client, the shared list snapshot, the background refresh poller, and the
// TUI itself.
package app
