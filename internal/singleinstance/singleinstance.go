// Package singleinstance keeps two runs of the application from writing the
// quick-save directory at the same time.
package singleinstance

import "errors"

// ErrAlreadyRunning is returned by Acquire when another process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is a held single-instance lock. Release it when done.
type Lock struct {
	release func()
}

// Release frees the lock. Safe to call more than once.
func (l *Lock) Release() {
	if l == nil || l.release == nil {
		return
	}
	l.release()
	l.release = nil
}
