package otel

import (
	"context"
	"time"
)

// Nop is a no-op implementation of the netgate.Observer interface. It serves
// as a placeholder for an OpenTelemetry-backed observer without adding
// dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) RunStarted(context.Context, time.Duration)         {}
func (*Nop) UpdateObserved(context.Context, bool)              {}
func (*Nop) OperationStarted(context.Context)                  {}
func (*Nop) RunFinished(context.Context, time.Duration, error) {}
