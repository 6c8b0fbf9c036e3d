// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the extraction model, the workspace API,
// document decoders, the OAuth provider, and session storage.
package driven
