// Package netgate runs operations gated on network reachability.
// An Executor races a waiter (first "reachable" update, then the operation)
// against a timeout, returns whichever finishes first, and cancels and joins
// the losing branch before returning.
package netgate
