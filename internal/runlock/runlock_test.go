package runlock

import (
	"errors"
	"testing"
)

func TestSecondAcquireIsBusy(t *testing.T) {
	dir := t.TempDir()

	first, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Release()

	if _, err := Acquire(dir); !errors.Is(err, ErrBusy) {
		t.Fatalf("second acquire: got %v, want ErrBusy", err)
	}
}

func TestReleaseFreesTheLock(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Release(); err != nil {
		t.Fatal(err)
	}

	again, err := Acquire(dir)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again.Release()
}

func TestIndependentDirsDoNotConflict(t *testing.T) {
	a, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()

	b, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("separate data dir must have its own lock: %v", err)
	}
	b.Release()
}
