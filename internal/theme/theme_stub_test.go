//go:build !windows

package theme

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStubSourceIsDark(t *testing.T) {
	if NewSource().Light() {
		t.Error("stub source should report a dark taskbar")
	}
}

func TestStubWatchBlocksUntilCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewSource().Watch(ctx, func() {
			t.Error("stub watch must never signal a change")
		})
	}()

	select {
	case err := <-done:
		t.Fatalf("Watch returned before cancel: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
