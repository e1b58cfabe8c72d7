// Package observability records what a primo session did as JSON Lines
// events and derives usage metrics from them on demand.
package observability
