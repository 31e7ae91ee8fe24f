// Package log provides a netgate.Observer that emits structured logs via
// logrus.
package log

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NetPo4ki/go-netgate/netgate"
)

// Observer logs run lifecycle events. Per-update events log at debug level so
// a chatty reachability source does not flood the output; run outcomes log at
// info or warn.
type Observer struct {
	log logrus.FieldLogger
}

var _ netgate.Observer = (*Observer)(nil)

// New returns an Observer writing to l. A nil l falls back to the logrus
// standard logger.
func New(l logrus.FieldLogger) *Observer {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Observer{log: l}
}

func (o *Observer) RunStarted(_ context.Context, timeout time.Duration) {
	o.log.WithField("timeout", timeout).Debug("gated run started")
}

func (o *Observer) UpdateObserved(_ context.Context, reachable bool) {
	o.log.WithField("reachable", reachable).Debug("reachability update")
}

func (o *Observer) OperationStarted(_ context.Context) {
	o.log.Debug("operation started")
}

func (o *Observer) RunFinished(_ context.Context, dur time.Duration, err error) {
	entry := o.log.WithField("duration", dur)
	if err != nil {
		entry.WithError(err).Warn("gated run failed")
		return
	}
	entry.Info("gated run succeeded")
}
