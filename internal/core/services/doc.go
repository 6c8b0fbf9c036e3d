// Package services implements the application core: syllabus text
// extraction, the OAuth credential broker, board synchronisation, and
// document decoding. Services depend only on domain types and ports.
package services
