package signal

import (
	"context"
	"errors"
	"net"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-netgate/netgate"
)

// errReachable short-circuits a probe round: returning it from an errgroup
// task cancels the sibling dials.
var errReachable = errors.New("signal: endpoint reachable")

// Dial returns a polling source that decides reachability by dialing TCP
// endpoints. Each round dials every address concurrently and reports
// reachable iff at least one dial succeeds within dialTimeout; the first
// success cancels the remaining dials. With no addresses the source reports
// unreachable forever.
func Dial(addrs []string, interval, dialTimeout time.Duration) netgate.Source {
	targets := slices.Clone(addrs)
	return Poll(interval, func(ctx context.Context) bool {
		return dialAny(ctx, targets, dialTimeout)
	})
}

func dialAny(ctx context.Context, addrs []string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	var d net.Dialer
	for _, addr := range addrs {
		addr := addr
		g.Go(func() error {
			conn, err := d.DialContext(ctx, "tcp", addr)
			if err != nil {
				// This endpoint is down; another may answer.
				return nil
			}
			conn.Close()
			return errReachable
		})
	}
	return errors.Is(g.Wait(), errReachable)
}
