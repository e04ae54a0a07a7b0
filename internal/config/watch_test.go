package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatchCredentialsSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".credentials.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	go WatchCredentials(ctx, path, zerolog.Nop(), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	// Give the watcher time to register before the write.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal after writing the credential store")
	}
}

func TestWatchCredentialsIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".credentials.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	go WatchCredentials(ctx, path, zerolog.Nop(), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Fatal("unrelated file triggered a change signal")
	case <-time.After(time.Second):
	}
}

func TestWatchCredentialsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- WatchCredentials(ctx, filepath.Join(t.TempDir(), "c.json"), zerolog.Nop(), func() {})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
