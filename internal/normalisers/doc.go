// Package normalisers turns untrusted backend payloads into domain types.
//
// Normalisers are pure functions: they never fail and never log. Input that
// does not match the expected shape is dropped rather than reported.
package normalisers
