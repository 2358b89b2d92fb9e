package audio

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAwaitSettledReturnsResult(t *testing.T) {
	ch := make(chan settled[int], 1)
	ch <- settled[int]{v: 7}
	v, err := awaitSettled(context.Background(), ch, func(int) { t.Fatalf("late called on the happy path") })
	if err != nil || v != 7 {
		t.Fatalf("v=%d err=%v", v, err)
	}
}

func TestAwaitSettledHandsLateGrantToCleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan settled[string], 1)
	released := make(chan string, 1)
	cancel()
	if _, err := awaitSettled(ctx, ch, func(s string) { released <- s }); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want canceled", err)
	}
	ch <- settled[string]{v: "stream"}
	select {
	case got := <-released:
		if got != "stream" {
			t.Fatalf("released %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("late grant never released")
	}
}

func TestAwaitSettledIgnoresLateFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := make(chan settled[int], 1)
	called := make(chan struct{}, 1)
	awaitSettled(ctx, ch, func(int) { called <- struct{}{} })
	ch <- settled[int]{err: ErrPermissionDenied}
	select {
	case <-called:
		t.Fatalf("cleanup ran for a rejected promise")
	case <-time.After(20 * time.Millisecond):
	}
}
