// Package errgroup bridges netgate into errgroup-structured programs. It
// lets a golang.org/x/sync/errgroup pipeline gate its tasks on reachability
// without restructuring around an Executor.
package errgroup

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-netgate/netgate"
)

// Group runs every task through the same reachability gate and timeout. It
// keeps errgroup's fail-fast semantics: the first gated run to fail cancels
// the group's context, which in turn cancels the other runs' races.
type Group struct {
	g   *errgroup.Group
	ctx context.Context
	e   *netgate.Executor
	to  time.Duration
}

// WithContext creates a gated Group bound to ctx. Because every task
// subscribes to src independently, src must support concurrent subscriptions
// (signal.Trace, signal.Poll, signal.Dial do; a channel adapter does not).
func WithContext(ctx context.Context, src netgate.Source, timeout time.Duration, opts ...netgate.Option) (*Group, context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	return &Group{g: g, ctx: ctx, e: netgate.New(src, opts...), to: timeout}, ctx
}

// Go schedules op on the group, gated on reachability.
func (g *Group) Go(op func(context.Context) error) {
	if op == nil {
		return
	}
	g.g.Go(func() error {
		return g.e.Run(g.ctx, g.to, op)
	})
}

// Wait blocks until all gated runs have returned and reports the first
// failure, if any.
func (g *Group) Wait() error {
	return g.g.Wait()
}
