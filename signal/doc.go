// Package signal provides reachability sources for netgate: adapters for
// externally owned update channels, replayable fixed traces for tests, a
// polling source for environments without a live reachability stream, and a
// TCP prober that derives reachability by dialing candidate endpoints.
package signal
