// Package normalisers decodes uploaded documents into plain text.
// Each format lives in its own subpackage; the Registry selects a
// decoder by MIME type or file extension.
package normalisers
