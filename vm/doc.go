// Package vm bootstraps Java VMs and binds threads to them.
//
// A Library wraps the three exported JNI_* symbols of a JVM library. Create
// starts a VM and returns the Env of the calling thread; Created finds VMs
// that already exist in the process. Other threads join through Attach or
// AttachDaemon and leave through Detach.
//
// JNI ties an Env to its OS thread, so Create and Attach lock the calling
// goroutine to its thread until Destroy or Detach. Do and Go wrap that
// bookkeeping for short-lived work:
//
//	err := machine.Go(ctx, 4, func(ctx context.Context, i int, e *env.Env) error {
//		_, err := e.FindClass("java/lang/String")
//		return err
//	})
//
// Every Env obtained through one VM records its global references in the
// VM's shared ledger.
package vm
