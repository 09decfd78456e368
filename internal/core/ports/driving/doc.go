// Package driving provides interfaces for use-case entry points
// (primary/inbound ports) consumed by the CLI, TUI, and MCP adapters.
package driving
