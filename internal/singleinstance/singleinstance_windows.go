//go:build windows

package singleinstance

import "golang.org/x/sys/windows"

// Acquire takes the session-scoped named mutex name. Returns ErrAlreadyRunning
// when another process created it first.
//
// Usage:
//
//	lock, err := singleinstance.Acquire(appinfo.MutexName)
//	if err != nil { return err }
//	defer lock.Release()
func Acquire(name string) (*Lock, error) {
	ptr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}

	h, err := windows.CreateMutex(nil, false, ptr)
	if err != nil {
		if err == windows.ERROR_ALREADY_EXISTS {
			// We got a handle to someone else's mutex; don't keep it.
			if h != 0 {
				windows.CloseHandle(h)
			}
			return nil, ErrAlreadyRunning
		}
		return nil, err
	}

	return &Lock{release: func() { windows.CloseHandle(h) }}, nil
}
