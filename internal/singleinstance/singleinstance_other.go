//go:build !windows

package singleinstance

// Acquire is a no-op on non-Windows platforms, where the client does not run
// natively and concurrent saves are not expected.
func Acquire(name string) (*Lock, error) {
	return &Lock{release: func() {}}, nil
}
