// Package refs tracks the lifetime of JNI references handed out to the host.
//
// A Ledger records, per reference class, which handles have been observed and
// which have been released. Env consults it before every delete so that
// deleting a null or already-deleted handle never reaches the VM twice. A
// handle value the VM hands out again after release is observed anew and may
// be deleted again.
//
// Observers subscribe to lifecycle events:
//
//	ledger := refs.NewLedger()
//	ledger.Subscribe(myObserver)
//
// The ledger is safe for concurrent use; global references may be shared
// across threads.
package refs
