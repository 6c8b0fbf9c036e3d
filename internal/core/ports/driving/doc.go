// Package driving provides interfaces for application entry points
// (primary/inbound ports) consumed by the HTTP and CLI adapters.
package driving
