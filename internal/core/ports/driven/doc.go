// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding and generation backends, the
// per-video collection store, the summary cache, the credential store, and
// the prompt store.
package driven
