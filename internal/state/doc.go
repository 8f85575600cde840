// Package state holds the shared invoice list snapshot.
//
// The background poller writes into the Store; the UI reads copies out of it
// on its own tick. A refresh failure never clears the previously fetched
// list, only records the error and bumps a failure counter the header uses
// for its offline indicator.
package state
