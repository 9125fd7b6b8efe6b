// Package placeholder resolves {{KEY}} tokens in configuration templates.
//
// Substitution is a single pass over the original template: values are
// inserted verbatim and never re-scanned, so a value that itself looks like
// a token stays literal. Tokens without a value are left in place; use
// [Unresolved] to detect them.
package placeholder
