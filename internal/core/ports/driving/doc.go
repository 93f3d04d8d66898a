// Package driving defines the primary (inbound) ports of the core.
// These interfaces are consumed by the CLI and TUI adapters.
package driving
