// Package driving provides interfaces for external actors
// (primary/inbound ports): the CLI and TUI adapters drive the
// application exclusively through these.
package driving
