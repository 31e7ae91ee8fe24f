package signal

import (
	"context"
	"fmt"
	"time"

	"github.com/NetPo4ki/go-netgate/netgate"
)

// FromChan adapts an externally owned update channel into a Source. The
// channel is shared, not replayed, so a FromChan source supports a single
// subscription: hand it to exactly one Run. Closing the channel marks the
// source exhausted. The adapter cannot stop the producer; owners who need
// teardown should stop writing when the run's context ends.
func FromChan(ch <-chan bool) netgate.Source {
	return chanSource{ch: ch}
}

type chanSource struct {
	ch <-chan bool
}

func (s chanSource) Subscribe(context.Context) (<-chan bool, error) {
	return s.ch, nil
}

// Trace returns a finite source that replays values in order and then closes
// the stream. Every Subscribe gets a fresh stream, so a Trace may be shared
// across concurrent runs.
func Trace(values ...bool) netgate.Source {
	return traceSource{values: values}
}

// TraceTimed is Trace with a fixed delay before each value.
func TraceTimed(step time.Duration, values ...bool) netgate.Source {
	return traceSource{values: values, step: step}
}

type traceSource struct {
	values []bool
	step   time.Duration
}

func (s traceSource) Subscribe(ctx context.Context) (<-chan bool, error) {
	out := make(chan bool)
	go func() {
		defer close(out)
		for _, v := range s.values {
			if s.step > 0 {
				select {
				case <-time.After(s.step):
				case <-ctx.Done():
					return
				}
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Poll returns a source that reports probe's result immediately on Subscribe
// and then once per interval. It is the polling alternative for environments
// without a live reachability stream; the stream never closes on its own.
// Each Subscribe runs its own probe loop, so a Poll source may be shared
// across concurrent runs provided probe itself is safe for concurrent use.
func Poll(interval time.Duration, probe func(ctx context.Context) bool) netgate.Source {
	return pollSource{interval: interval, probe: probe}
}

type pollSource struct {
	interval time.Duration
	probe    func(ctx context.Context) bool
}

func (s pollSource) Subscribe(ctx context.Context) (<-chan bool, error) {
	if s.interval <= 0 {
		return nil, fmt.Errorf("signal: non-positive poll interval %v", s.interval)
	}
	if s.probe == nil {
		return nil, fmt.Errorf("signal: nil probe")
	}
	out := make(chan bool)
	go func() {
		defer close(out)
		tick := time.NewTicker(s.interval)
		defer tick.Stop()
		for {
			v := s.probe(ctx)
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
			select {
			case <-tick.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
