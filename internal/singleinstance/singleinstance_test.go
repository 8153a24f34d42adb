package singleinstance

import "testing"

func TestAcquire_Success(t *testing.T) {
	lock, err := Acquire("Local\\vrcvisits-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lock == nil {
		t.Fatal("lock should not be nil")
	}

	lock.Release()
	lock.Release()
}

func TestLock_ReleaseNil(t *testing.T) {
	var lock *Lock
	lock.Release()
}
