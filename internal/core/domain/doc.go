// Package domain contains the core business entities and errors for
// syllaboard: extracted assignments, OAuth credentials, and the external
// board schema. It has no dependencies on adapters or infrastructure.
package domain
