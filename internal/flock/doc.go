// Package flock serializes writers of the snapshot store with exclusive
// advisory file locks.
//
// Usage:
//
//	lock, err := flock.Acquire(ctx, filepath.Join(dir, ".lock"), 5*time.Second)
//	if err != nil {
//	    return err // ErrLockTimeout when another process holds it
//	}
//	defer lock.Release()
package flock
