// Package otel reserves a home for an OpenTelemetry-backed observer.
package otel
