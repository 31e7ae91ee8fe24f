package signal

import (
	"context"
	"net"
	"testing"
	"time"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	return ln
}

// deadAddr returns a loopback address with nothing listening on it.
func deadAddr(t *testing.T) string {
	t.Helper()
	ln := listen(t)
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func TestDialAnyReachableEndpoint(t *testing.T) {
	t.Parallel()
	ln := listen(t)
	if !dialAny(context.Background(), []string{ln.Addr().String()}, time.Second) {
		t.Fatal("expected live listener to be reachable")
	}
}

func TestDialAnyMixedEndpoints(t *testing.T) {
	t.Parallel()
	ln := listen(t)
	addrs := []string{deadAddr(t), ln.Addr().String()}
	if !dialAny(context.Background(), addrs, time.Second) {
		t.Fatal("expected reachability when any endpoint answers")
	}
}

func TestDialAnyNoEndpoints(t *testing.T) {
	t.Parallel()
	if dialAny(context.Background(), nil, time.Second) {
		t.Fatal("no endpoints must never report reachable")
	}
	if dialAny(context.Background(), []string{deadAddr(t)}, 200*time.Millisecond) {
		t.Fatal("dead endpoint must not report reachable")
	}
}

func TestDialSourceReportsListener(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln := listen(t)
	src := Dial([]string{ln.Addr().String()}, 20*time.Millisecond, time.Second)
	updates, err := src.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if got := take(t, updates, 1); !got[0] {
		t.Fatal("first probe of a live listener reported unreachable")
	}
}

func TestDialSourceRecoversWhenListenerAppears(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := deadAddr(t)
	src := Dial([]string{addr}, 20*time.Millisecond, 200*time.Millisecond)
	updates, err := src.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if got := take(t, updates, 1); got[0] {
		t.Fatal("probe reported reachable before the listener exists")
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		t.Skipf("could not rebind %s: %v", addr, err)
	}
	defer ln.Close()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case v, ok := <-updates:
			if !ok {
				t.Fatal("stream closed unexpectedly")
			}
			if v {
				return
			}
		case <-deadline:
			t.Fatal("prober never noticed the new listener")
		}
	}
}
