package log

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/NetPo4ki/go-netgate/netgate"
	"github.com/NetPo4ki/go-netgate/signal"
)

func newCaptured() (*Observer, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(logger), hook
}

func TestRunOutcomeLevels(t *testing.T) {
	t.Parallel()
	obs, hook := newCaptured()

	obs.RunFinished(context.Background(), time.Millisecond, nil)
	if e := hook.LastEntry(); e == nil || e.Level != logrus.InfoLevel {
		t.Fatalf("success should log at info, got %+v", e)
	}

	obs.RunFinished(context.Background(), time.Millisecond, netgate.ErrTimeout)
	e := hook.LastEntry()
	if e == nil || e.Level != logrus.WarnLevel {
		t.Fatalf("failure should log at warn, got %+v", e)
	}
	if e.Data[logrus.ErrorKey] == nil {
		t.Fatal("failure entry should carry the error field")
	}
}

func TestObserverCapturesFullRun(t *testing.T) {
	t.Parallel()
	obs, hook := newCaptured()
	e := netgate.New(signal.Trace(false, true), netgate.WithObserver(obs))
	if err := e.Run(context.Background(), time.Second, func(_ context.Context) error { return nil }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// started + two updates + operation + finished
	if got := len(hook.AllEntries()); got != 5 {
		t.Fatalf("captured %d entries, want 5", got)
	}
}

func TestNilLoggerFallsBack(t *testing.T) {
	t.Parallel()
	if New(nil) == nil {
		t.Fatal("New(nil) must return a usable observer")
	}
}
