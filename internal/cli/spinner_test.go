package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner("Building...")
	s.out = &out
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if !strings.Contains(out.String(), "Building...") {
		t.Errorf("spinner output %q should contain the message", out.String())
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Error("spinner should clear its line when stopped")
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner("first")
	s.out = &out
	s.SetMessage("second")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if strings.Contains(out.String(), "first") {
		t.Errorf("spinner output %q should only show the updated message", out.String())
	}
	if !strings.Contains(out.String(), "second") {
		t.Errorf("spinner output %q should contain the updated message", out.String())
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Waiting...")
	s.out = &syncBuffer{}
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.out = &syncBuffer{}
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopBeforeDraw(t *testing.T) {
	var out syncBuffer
	s := newSpinner("quick")
	s.out = &out
	s.Start()
	s.Stop()

	if strings.Contains(out.String(), "quick") && !strings.HasSuffix(out.String(), "\r") {
		t.Errorf("spinner left a partial line: %q", out.String())
	}
}
