package netgate

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Source delivers reachability updates to an Executor.
//
// Subscribe begins delivery and returns an ordered stream of availability
// booleans. The stream may repeat values and may never end; a closed channel
// means the source is exhausted and will deliver nothing further. When ctx is
// done the producer must cease delivery and release any per-subscriber
// resources it holds.
//
// An Executor calls Subscribe exactly once per Run. Whether a Source
// tolerates repeated or concurrent subscriptions is the Source's own
// contract: callers holding a single-subscriber source (common for
// device-reachability monitors) must hand the Executor a fresh source per
// Run.
type Source interface {
	Subscribe(ctx context.Context) (<-chan bool, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (<-chan bool, error)

func (f SourceFunc) Subscribe(ctx context.Context) (<-chan bool, error) { return f(ctx) }

type Option func(*Options)

type Options struct {
	PanicAsError bool
	Observer     Observer
}

func defaultOptions() Options { return Options{PanicAsError: true} }

// WithPanicAsError controls whether a panic inside the operation or the
// source's machinery is recovered and surfaced as *InternalError. Enabled by
// default; when disabled the panic is re-raised on the waiter goroutine.
func WithPanicAsError(v bool) Option { return func(o *Options) { o.PanicAsError = v } }

// WithObserver attaches lifecycle hooks to every Run.
func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Observer receives lifecycle events from an Executor. Hooks are called on
// the run's own goroutines, so implementations must be safe for concurrent
// use and should not block.
type Observer interface {
	RunStarted(ctx context.Context, timeout time.Duration)
	UpdateObserved(ctx context.Context, reachable bool)
	OperationStarted(ctx context.Context)
	RunFinished(ctx context.Context, dur time.Duration, err error)
}

// Executor runs operations once a reachability source reports available,
// bounded by a per-run timeout. The zero value is invalid; use New. An
// Executor holds no per-run state and is safe for concurrent use as long as
// its Source supports concurrent subscriptions.
type Executor struct {
	src  Source
	opts Options
	obs  Observer
}

// New constructs an Executor reading reachability from src.
func New(src Source, optFns ...Option) *Executor {
	if src == nil {
		panic("netgate: New called with nil Source")
	}
	e := &Executor{src: src, opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&e.opts)
	}
	e.obs = e.opts.Observer
	return e
}

// Run invokes op once the source first reports reachable, unless timeout
// elapses first. The two branches are started concurrently and the first to
// finish decides the outcome; the loser is cancelled and joined before Run
// returns, so no goroutine started by the run outlives it.
//
// Run returns op's own result on success, ErrTimeout if the window elapsed
// first, ErrExhausted if the source closed its stream without ever reporting
// reachable, ctx.Err() if the caller's context ended the run, or
// *InternalError for unexpected machinery failures. op is invoked at most
// once per call. A negative timeout is programmer error and panics.
func (e *Executor) Run(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	if timeout < 0 {
		panic(fmt.Sprintf("netgate: negative timeout %v", timeout))
	}
	if op == nil {
		panic("netgate: Run called with nil operation")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var start time.Time
	if e.obs != nil {
		start = time.Now()
		e.obs.RunStarted(ctx, timeout)
	}
	err := e.race(ctx, timeout, op)
	if e.obs != nil {
		e.obs.RunFinished(ctx, time.Since(start), err)
	}
	return err
}

func (e *Executor) race(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so the losing branch can always report and exit.
	results := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results <- e.await(runCtx, op)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTimer(timeout)
		defer t.Stop()
		select {
		case <-t.C:
			results <- ErrTimeout
		case <-runCtx.Done():
			results <- runCtx.Err()
		}
	}()

	joined := make(chan struct{})
	go func() {
		wg.Wait()
		close(joined)
	}()

	var winner error
	select {
	case winner = <-results:
	case <-joined:
		// Both branches returned without reporting. Should not happen, but
		// Run must never hang on it.
		select {
		case winner = <-results:
		default:
			return ErrNoResult
		}
	}

	// The race is resolved: cancel the loser and join both branches so no
	// work leaks past this call. Updates arriving after this point are never
	// observed.
	cancel()
	<-joined
	return winner
}

// await is the waiter branch: consume updates in arrival order and invoke op
// on the first reachable one.
func (e *Executor) await(ctx context.Context, op func(context.Context) error) (err error) {
	if e.opts.PanicAsError {
		defer func() {
			if r := recover(); r != nil {
				err = &InternalError{cause: fmt.Errorf("panic: %v", r)}
			}
		}()
	}

	updates, subErr := e.src.Subscribe(ctx)
	if subErr != nil {
		return &InternalError{cause: subErr}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case reachable, ok := <-updates:
			if !ok {
				return ErrExhausted
			}
			if e.obs != nil {
				e.obs.UpdateObserved(ctx, reachable)
			}
			if !reachable {
				continue
			}
			// The timer may have won between the update and here; never
			// start the operation under a dead context.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if e.obs != nil {
				e.obs.OperationStarted(ctx)
			}
			return op(ctx)
		}
	}
}

// From is a convenience wrapper around [Executor.Run] for operations that
// produce a value. On any non-nil error the zero value of T is returned.
func From[T any](ctx context.Context, e *Executor, timeout time.Duration, op func(context.Context) (T, error)) (T, error) {
	var v T
	err := e.Run(ctx, timeout, func(ctx context.Context) error {
		var err error
		v, err = op(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
