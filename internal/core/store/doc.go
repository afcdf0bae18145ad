// Package store owns the canonical application state tree.
//
// A Store keeps one domain.State in memory, mirrors it to a ports.Storage
// backend under a single key, and notifies subscribers after every commit.
//
// # Transactions
//
// UpdateState is the only mutation path used by services. The updater gets
// an isolated deep copy; its return value replaces the canonical state. Commits
// are serialised by a mutex, so two updates never interleave: issuing f then g
// always yields g(f(s)). Updaters run while the commit lock is held and must
// not call back into the Store.
//
// # Notifications
//
// Listeners run outside the commit lock, one at a time, in registration order,
// each with its own copy of the committed state. Notifications are delivered in
// commit order by whichever goroutine is currently dispatching. A listener that
// mutates the store does not recurse: its commit is applied immediately and its
// notification is queued behind the current round. A listener that mutates on
// every notification will therefore keep the dispatcher busy forever.
//
// # Corruption
//
// An unparsable stored document is logged as domain.StorageCorruptionError,
// replaced by defaults and never surfaced to callers.
package store
